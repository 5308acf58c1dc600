package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/photofold/photofold/pkg/library/models"
)

func newTestStore(t *testing.T) *GORMStore {
	t.Helper()
	s, err := New(&Config{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *GORMStore, username string) *models.User {
	t.Helper()
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         string(models.RoleUser),
		Enabled:      true,
	}
	if _, err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestAsset(t *testing.T, s *GORMStore, ownerID string, n int, takenAt time.Time) *models.Asset {
	t.Helper()
	size := int64(1000 + n)
	asset := &models.Asset{
		ID:           fmt.Sprintf("asset-%04d", n),
		OwnerID:      ownerID,
		OriginalPath: fmt.Sprintf("originals/%04d.jpg", n),
		OriginalName: fmt.Sprintf("IMG_%04d", n),
		Type:         models.AssetTypeImage,
		SizeBytes:    &size,
		TakenAt:      takenAt,
	}
	if _, err := s.CreateAsset(context.Background(), asset); err != nil {
		t.Fatalf("failed to create asset %d: %v", n, err)
	}
	return asset
}
