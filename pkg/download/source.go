package download

import (
	"context"

	"github.com/photofold/photofold/pkg/library/models"
)

// pageSource is a lazy, one-shot, forward-only sequence of asset pages.
// The next page is fetched only when Next is called, bounding memory to a
// single page regardless of library size. A source must not be reused
// after Next returns ok=false or an error.
type pageSource struct {
	fetch  func(ctx context.Context, cursor string) (*models.AssetPage, error)
	cursor string
	done   bool
}

// Next returns the next page of assets. ok is false once the sequence is
// exhausted; the returned slice is never reused between calls.
func (p *pageSource) Next(ctx context.Context) (assets []models.Asset, ok bool, err error) {
	if p.done {
		return nil, false, nil
	}

	page, err := p.fetch(ctx, p.cursor)
	if err != nil {
		p.done = true
		return nil, false, err
	}

	p.cursor = page.NextCursor
	if p.cursor == "" {
		p.done = true
	}
	if len(page.Assets) == 0 {
		return nil, false, nil
	}
	return page.Assets, true, nil
}

// newIDPageSource yields exactly one page containing the resolved assets
// for the caller-supplied ids. The ids are not re-paginated; the access
// check has already covered them as a set.
func newIDPageSource(source AssetSource, ids []string) *pageSource {
	return &pageSource{
		fetch: func(ctx context.Context, _ string) (*models.AssetPage, error) {
			assets, err := source.GetAssetsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return &models.AssetPage{Assets: assets}, nil
		},
	}
}

// newAlbumPageSource pages through an album's assets.
func newAlbumPageSource(source AssetSource, albumID string, pageSize int) *pageSource {
	return &pageSource{
		fetch: func(ctx context.Context, cursor string) (*models.AssetPage, error) {
			return source.AssetsByAlbum(ctx, albumID, cursor, pageSize)
		},
	}
}

// newOwnerPageSource pages through a user's entire library.
func newOwnerPageSource(source AssetSource, ownerID string, pageSize int) *pageSource {
	return &pageSource{
		fetch: func(ctx context.Context, cursor string) (*models.AssetPage, error) {
			return source.AssetsByOwner(ctx, ownerID, cursor, pageSize)
		},
	}
}
