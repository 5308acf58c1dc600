package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/photofold/photofold/pkg/library/models"
)

// ============================================
// ASSET OPERATIONS
// ============================================

// CreateAsset stores a new asset record. Assets are normally created by the
// ingestion pipeline; this is also used by tests and seeding.
func (s *GORMStore) CreateAsset(ctx context.Context, asset *models.Asset) (string, error) {
	return createWithID(s.db, ctx, asset, func(a *models.Asset, id string) { a.ID = id }, asset.ID, models.ErrAssetNotFound)
}

// GetAssetsByIDs fetches the assets for the given ids, preserving the input
// order. Ids absent from the store are silently skipped; callers that need
// all ids present must compare lengths.
func (s *GORMStore) GetAssetsByIDs(ctx context.Context, ids []string) ([]models.Asset, error) {
	if len(ids) == 0 {
		return []models.Asset{}, nil
	}

	var found []models.Asset
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Asset, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	ordered := make([]models.Asset, 0, len(found))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

// AssetsByAlbum returns one page of an album's assets using keyset
// pagination on the asset id. An empty cursor starts from the beginning;
// the returned NextCursor is empty once the album is exhausted.
func (s *GORMStore) AssetsByAlbum(ctx context.Context, albumID, cursor string, limit int) (*models.AssetPage, error) {
	q := s.db.WithContext(ctx).
		Joins("JOIN album_assets ON album_assets.asset_id = assets.id").
		Where("album_assets.album_id = ?", albumID)
	return s.pageAssets(q, cursor, limit)
}

// AssetsByOwner returns one page of a user's assets using keyset pagination
// on the asset id.
func (s *GORMStore) AssetsByOwner(ctx context.Context, ownerID, cursor string, limit int) (*models.AssetPage, error) {
	q := s.db.WithContext(ctx).Where("assets.owner_id = ?", ownerID)
	return s.pageAssets(q, cursor, limit)
}

// pageAssets applies keyset pagination to a prepared asset query. Ordering
// by id keeps the cursor stable under concurrent inserts.
func (s *GORMStore) pageAssets(q *gorm.DB, cursor string, limit int) (*models.AssetPage, error) {
	if cursor != "" {
		q = q.Where("assets.id > ?", cursor)
	}

	var assets []models.Asset
	if err := q.Order("assets.id").Limit(limit).Find(&assets).Error; err != nil {
		return nil, err
	}

	page := &models.AssetPage{Assets: assets}
	if len(assets) == limit {
		page.NextCursor = assets[len(assets)-1].ID
	}
	return page, nil
}

// AssetsOnDate returns the owner's assets captured on the given calendar
// date (UTC day boundaries), ordered by capture time.
func (s *GORMStore) AssetsOnDate(ctx context.Context, ownerID string, date time.Time) ([]models.Asset, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var assets []models.Asset
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("taken_at >= ? AND taken_at < ?", day, day.AddDate(0, 0, 1)).
		Order("taken_at").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// AccessibleAssetCount counts how many of the given asset ids the user may
// download: assets they own, plus assets in albums shared with them.
func (s *GORMStore) AccessibleAssetCount(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sharedAssets := s.db.Table("album_assets").
		Select("album_assets.asset_id").
		Joins("JOIN album_shares ON album_shares.album_id = album_assets.album_id").
		Where("album_shares.user_id = ?", userID)

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Where("id IN ?", ids).
		Where("owner_id = ? OR id IN (?)", userID, sharedAssets).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
