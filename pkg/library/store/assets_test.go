package store

import (
	"context"
	"testing"
	"time"

	"github.com/photofold/photofold/pkg/library/models"
)

func TestGetAssetsByIDs_PreservesOrderAndSkipsMissing(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	taken := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for n := 1; n <= 3; n++ {
		createTestAsset(t, s, owner.ID, n, taken)
	}

	assets, err := s.GetAssetsByIDs(context.Background(),
		[]string{"asset-0003", "asset-0001", "no-such-id", "asset-0002"})
	if err != nil {
		t.Fatalf("GetAssetsByIDs failed: %v", err)
	}

	want := []string{"asset-0003", "asset-0001", "asset-0002"}
	if len(assets) != len(want) {
		t.Fatalf("got %d assets, want %d", len(assets), len(want))
	}
	for i, id := range want {
		if assets[i].ID != id {
			t.Errorf("assets[%d].ID = %s, want %s", i, assets[i].ID, id)
		}
	}
}

func TestGetAssetsByIDs_EmptyInput(t *testing.T) {
	s := newTestStore(t)
	assets, err := s.GetAssetsByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetAssetsByIDs failed: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("expected empty result, got %d assets", len(assets))
	}
}

func TestAssetsByOwner_KeysetPagination(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	other := createTestUser(t, s, "bob")
	taken := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for n := 1; n <= 5; n++ {
		createTestAsset(t, s, owner.ID, n, taken)
	}
	createTestAsset(t, s, other.ID, 100, taken)

	var seen []string
	cursor := ""
	pages := 0
	for {
		page, err := s.AssetsByOwner(context.Background(), owner.ID, cursor, 2)
		if err != nil {
			t.Fatalf("AssetsByOwner failed: %v", err)
		}
		pages++
		for _, a := range page.Assets {
			seen = append(seen, a.ID)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
		if pages > 10 {
			t.Fatal("pagination did not terminate")
		}
	}

	if len(seen) != 5 {
		t.Fatalf("paged through %d assets, want 5: %v", len(seen), seen)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Errorf("ids not strictly increasing: %v", seen)
		}
	}
	for _, id := range seen {
		if id == "asset-0100" {
			t.Error("other owner's asset leaked into page")
		}
	}
}

func TestAssetsByAlbum_Pagination(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	taken := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for n := 1; n <= 3; n++ {
		ids = append(ids, createTestAsset(t, s, owner.ID, n, taken).ID)
	}
	createTestAsset(t, s, owner.ID, 99, taken)

	albumID, err := s.CreateAlbum(context.Background(), &models.Album{
		OwnerID: owner.ID,
		Name:    "Trip",
	})
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}
	if err := s.AddAssetsToAlbum(context.Background(), albumID, ids); err != nil {
		t.Fatalf("AddAssetsToAlbum failed: %v", err)
	}

	page, err := s.AssetsByAlbum(context.Background(), albumID, "", 10)
	if err != nil {
		t.Fatalf("AssetsByAlbum failed: %v", err)
	}
	if len(page.Assets) != 3 {
		t.Fatalf("album page has %d assets, want 3", len(page.Assets))
	}
	if page.NextCursor != "" {
		t.Errorf("expected exhausted cursor, got %q", page.NextCursor)
	}
	for _, a := range page.Assets {
		if a.ID == "asset-0099" {
			t.Error("non-member asset appeared in album page")
		}
	}
}

func TestAssetsOnDate(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	other := createTestUser(t, s, "bob")

	day := time.Date(2023, 8, 29, 0, 0, 0, 0, time.UTC)
	createTestAsset(t, s, owner.ID, 1, day.Add(1*time.Minute))
	createTestAsset(t, s, owner.ID, 2, day.Add(23*time.Hour+59*time.Minute))
	createTestAsset(t, s, owner.ID, 3, day.Add(-1*time.Second))    // previous day
	createTestAsset(t, s, owner.ID, 4, day.AddDate(0, 0, 1))       // next day
	createTestAsset(t, s, other.ID, 5, day.Add(12*time.Hour))      // other owner

	assets, err := s.AssetsOnDate(context.Background(), owner.ID, day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("AssetsOnDate failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(assets))
	}
	if assets[0].ID != "asset-0001" || assets[1].ID != "asset-0002" {
		t.Errorf("unexpected assets or ordering: %s, %s", assets[0].ID, assets[1].ID)
	}
}

func TestAccessibleAssetCount(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	friend := createTestUser(t, s, "bob")
	taken := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	owned := createTestAsset(t, s, owner.ID, 1, taken)
	shared := createTestAsset(t, s, owner.ID, 2, taken)
	private := createTestAsset(t, s, owner.ID, 3, taken)

	albumID, err := s.CreateAlbum(context.Background(), &models.Album{
		OwnerID: owner.ID,
		Name:    "Shared trip",
	})
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}
	if err := s.AddAssetsToAlbum(context.Background(), albumID, []string{shared.ID}); err != nil {
		t.Fatalf("AddAssetsToAlbum failed: %v", err)
	}
	if err := s.ShareAlbum(context.Background(), albumID, friend.ID); err != nil {
		t.Fatalf("ShareAlbum failed: %v", err)
	}

	tests := []struct {
		name   string
		userID string
		ids    []string
		want   int64
	}{
		{"owner sees everything", owner.ID, []string{owned.ID, shared.ID, private.ID}, 3},
		{"friend sees only the shared asset", friend.ID, []string{owned.ID, shared.ID, private.ID}, 1},
		{"friend on shared id alone", friend.ID, []string{shared.ID}, 1},
		{"unknown ids count zero", friend.ID, []string{"no-such"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := s.AccessibleAssetCount(context.Background(), tt.userID, tt.ids)
			if err != nil {
				t.Fatalf("AccessibleAssetCount failed: %v", err)
			}
			if count != tt.want {
				t.Errorf("count = %d, want %d", count, tt.want)
			}
		})
	}
}
