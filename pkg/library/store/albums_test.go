package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/photofold/photofold/pkg/library/models"
)

func TestCreateAndGetAlbum(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")

	id, err := s.CreateAlbum(context.Background(), &models.Album{
		OwnerID:     owner.ID,
		Name:        "Summer 2024",
		Description: "beach trip",
	})
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}

	album, err := s.GetAlbum(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if album.Name != "Summer 2024" || album.OwnerID != owner.ID {
		t.Errorf("album = %+v", album)
	}
	if len(album.SharedWith) != 0 {
		t.Errorf("fresh album has %d shares", len(album.SharedWith))
	}
}

func TestCreateAlbum_Invalid(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateAlbum(context.Background(), &models.Album{OwnerID: "o"}); err == nil {
		t.Error("album without name accepted")
	}
	if _, err := s.CreateAlbum(context.Background(), &models.Album{Name: "n"}); err == nil {
		t.Error("album without owner accepted")
	}
}

func TestGetAlbum_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetAlbum(context.Background(), "nope"); !errors.Is(err, models.ErrAlbumNotFound) {
		t.Errorf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestShareAndUnshareAlbum(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	friend := createTestUser(t, s, "bob")

	id, err := s.CreateAlbum(context.Background(), &models.Album{OwnerID: owner.ID, Name: "Trip"})
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}

	if err := s.ShareAlbum(context.Background(), id, friend.ID); err != nil {
		t.Fatalf("ShareAlbum failed: %v", err)
	}
	album, err := s.GetAlbum(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if !album.IsSharedWith(friend.ID) {
		t.Error("share not visible after ShareAlbum")
	}

	if err := s.UnshareAlbum(context.Background(), id, friend.ID); err != nil {
		t.Fatalf("UnshareAlbum failed: %v", err)
	}
	album, err = s.GetAlbum(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if album.IsSharedWith(friend.ID) {
		t.Error("share still visible after UnshareAlbum")
	}
}

func TestAddAssetsToAlbum_MissingAsset(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")
	taken := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	asset := createTestAsset(t, s, owner.ID, 1, taken)

	id, err := s.CreateAlbum(context.Background(), &models.Album{OwnerID: owner.ID, Name: "Trip"})
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}

	err = s.AddAssetsToAlbum(context.Background(), id, []string{asset.ID, "no-such"})
	if !errors.Is(err, models.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestDeleteAlbum(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "alice")

	id, err := s.CreateAlbum(context.Background(), &models.Album{OwnerID: owner.ID, Name: "Trip"})
	if err != nil {
		t.Fatalf("CreateAlbum failed: %v", err)
	}
	if err := s.DeleteAlbum(context.Background(), id); err != nil {
		t.Fatalf("DeleteAlbum failed: %v", err)
	}
	if err := s.DeleteAlbum(context.Background(), id); !errors.Is(err, models.ErrAlbumNotFound) {
		t.Errorf("expected ErrAlbumNotFound on second delete, got %v", err)
	}
}
