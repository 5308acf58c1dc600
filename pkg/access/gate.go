// Package access implements the permission gate for download operations.
// Every check answers pass/fail: owners may download their own assets,
// album shares grant access to non-owners, and admins may act on any
// library. Denials surface as models.ErrAccessDenied and are never retried.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/photofold/photofold/pkg/library/models"
)

// Store is the subset of the library store the gate consults.
type Store interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetAlbum(ctx context.Context, id string) (*models.Album, error)
	AccessibleAssetCount(ctx context.Context, userID string, ids []string) (int64, error)
}

// Gate performs per-operation permission checks against the library store.
type Gate struct {
	store Store
}

// NewGate creates a gate backed by the given store.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// RequireAssetsDownload checks that the principal may download every one of
// the given asset ids. A single inaccessible id denies the whole set.
func (g *Gate) RequireAssetsDownload(ctx context.Context, principal string, assetIDs []string) error {
	if len(assetIDs) == 0 {
		return models.ErrInvalidRequest
	}

	unique := dedupe(assetIDs)
	count, err := g.store.AccessibleAssetCount(ctx, principal, unique)
	if err != nil {
		return fmt.Errorf("asset access check: %w", err)
	}
	if count < int64(len(unique)) {
		return models.ErrAccessDenied
	}
	return nil
}

// RequireAlbumDownload checks that the principal owns the album or has it
// shared with them.
func (g *Gate) RequireAlbumDownload(ctx context.Context, principal, albumID string) error {
	album, err := g.store.GetAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			// Hide album existence from users with no access.
			return models.ErrAccessDenied
		}
		return fmt.Errorf("album access check: %w", err)
	}

	if album.OwnerID == principal || album.IsSharedWith(principal) {
		return nil
	}
	return models.ErrAccessDenied
}

// RequireOwnerDownload checks that the principal may download an entire
// user library: their own, or any library when they are an admin.
func (g *Gate) RequireOwnerDownload(ctx context.Context, principal, ownerID string) error {
	if principal == ownerID {
		return nil
	}

	user, err := g.store.GetUserByID(ctx, principal)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.ErrAccessDenied
		}
		return fmt.Errorf("owner access check: %w", err)
	}
	if user.IsAdmin() {
		return nil
	}
	return models.ErrAccessDenied
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
