package store

import (
	"context"

	"github.com/photofold/photofold/pkg/library/models"
)

// ============================================
// ALBUM OPERATIONS
// ============================================

func (s *GORMStore) CreateAlbum(ctx context.Context, album *models.Album) (string, error) {
	if err := album.Validate(); err != nil {
		return "", err
	}
	return createWithID(s.db, ctx, album, func(a *models.Album, id string) { a.ID = id }, album.ID, models.ErrDuplicateAlbum)
}

// GetAlbum fetches an album with its share list preloaded. The asset list
// is not preloaded; paged retrieval goes through AssetsByAlbum.
func (s *GORMStore) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	return getByField[models.Album](s.db, ctx, "id", id, models.ErrAlbumNotFound, "SharedWith")
}

func (s *GORMStore) DeleteAlbum(ctx context.Context, id string) error {
	return deleteByField[models.Album](s.db, ctx, "id", id, models.ErrAlbumNotFound)
}

// AddAssetsToAlbum appends assets to an album's membership.
func (s *GORMStore) AddAssetsToAlbum(ctx context.Context, albumID string, assetIDs []string) error {
	album, err := s.GetAlbum(ctx, albumID)
	if err != nil {
		return err
	}

	assets, err := s.GetAssetsByIDs(ctx, assetIDs)
	if err != nil {
		return err
	}
	if len(assets) != len(assetIDs) {
		return models.ErrAssetNotFound
	}

	return s.db.WithContext(ctx).Model(album).Association("Assets").Append(&assets)
}

// ShareAlbum grants a user download access to an album's assets.
func (s *GORMStore) ShareAlbum(ctx context.Context, albumID, userID string) error {
	album, err := s.GetAlbum(ctx, albumID)
	if err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(album).Association("SharedWith").Append(user)
}

// UnshareAlbum revokes a user's access to an album.
func (s *GORMStore) UnshareAlbum(ctx context.Context, albumID, userID string) error {
	album, err := s.GetAlbum(ctx, albumID)
	if err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(album).Association("SharedWith").Delete(user)
}
