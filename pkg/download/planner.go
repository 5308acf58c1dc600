package download

import (
	"context"
	"fmt"

	"github.com/photofold/photofold/pkg/library/models"
)

// ArchivePlan is one size-bounded group of asset ids destined for a single
// downloadable archive. SizeBytes is the sum of the member assets' sizes;
// assets with unknown size count as zero. AssetIDs preserve discovery
// order. A plan is immutable once it appears in a DownloadInfo.
type ArchivePlan struct {
	SizeBytes int64    `json:"size_bytes"`
	AssetIDs  []string `json:"asset_ids"`
}

func (p *ArchivePlan) add(a *models.Asset) {
	p.SizeBytes += a.Size()
	p.AssetIDs = append(p.AssetIDs, a.ID)
}

// DownloadInfo is the plan response: the sealed archives and their total
// size, recomputed from the archives at construction time.
type DownloadInfo struct {
	TotalSizeBytes int64         `json:"total_size_bytes"`
	Archives       []ArchivePlan `json:"archives"`
}

func newDownloadInfo(archives []ArchivePlan) *DownloadInfo {
	info := &DownloadInfo{Archives: archives}
	for _, a := range archives {
		info.TotalSizeBytes += a.SizeBytes
	}
	return info
}

func (d *DownloadInfo) assetCount() int {
	n := 0
	for _, a := range d.Archives {
		n += len(a.AssetIDs)
	}
	return n
}

// planner consumes a page source to completion and packs every asset into
// archive plans. One accumulator is open at a time; it seals as soon as an
// addition pushes it past the target, so every sealed archive except
// possibly the last exceeds the threshold by at most one pairing group.
type planner struct {
	source *pageSource
	lookup func(ctx context.Context, ids []string) ([]models.Asset, error)
	target int64
}

func (pl *planner) plan(ctx context.Context) ([]ArchivePlan, error) {
	archives := []ArchivePlan{}
	var open ArchivePlan

	for {
		assets, ok, err := pl.source.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		groups, err := pl.resolveLivePairs(ctx, assets)
		if err != nil {
			return nil, err
		}

		for _, group := range groups {
			for i := range group {
				open.add(&group[i])
			}
			// A live photo and its motion clip are added as one unit, so a
			// seal can never fall between them.
			if open.SizeBytes > pl.target || pl.target <= 0 {
				archives = append(archives, open)
				open = ArchivePlan{}
			}
		}
	}

	if len(open.AssetIDs) > 0 {
		archives = append(archives, open)
	}
	return archives, nil
}

// resolveLivePairs turns one page into packing groups. Live photos whose
// motion clip is absent from the page get it fetched in a single batched
// lookup, and each photo is grouped with its clip so both land in the same
// archive. Motion clips already in the page ride with their photo instead
// of packing separately.
func (pl *planner) resolveLivePairs(ctx context.Context, assets []models.Asset) ([][]models.Asset, error) {
	inPage := make(map[string]int, len(assets))
	for i := range assets {
		inPage[assets[i].ID] = i
	}

	// motionOwner maps an in-page motion clip to the first photo claiming
	// it, so the clip is skipped at its own position and emitted with the
	// photo. missing collects clips to fetch from the store.
	motionOwner := make(map[string]string)
	var missing []string
	for i := range assets {
		a := &assets[i]
		if !a.IsLivePhoto() {
			continue
		}
		motionID := *a.LivePhotoVideoID
		if _, ok := inPage[motionID]; ok {
			if _, claimed := motionOwner[motionID]; !claimed {
				motionOwner[motionID] = a.ID
			}
			continue
		}
		missing = append(missing, motionID)
	}

	fetched := make(map[string]models.Asset, len(missing))
	if len(missing) > 0 {
		motionAssets, err := pl.lookup(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("fetch live photo motion assets: %w", err)
		}
		for _, m := range motionAssets {
			fetched[m.ID] = m
		}
	}

	groups := make([][]models.Asset, 0, len(assets))
	for i := range assets {
		a := assets[i]
		if _, claimed := motionOwner[a.ID]; claimed {
			continue
		}
		if !a.IsLivePhoto() {
			groups = append(groups, []models.Asset{a})
			continue
		}

		motionID := *a.LivePhotoVideoID
		if owner, ok := motionOwner[motionID]; ok && owner == a.ID {
			groups = append(groups, []models.Asset{a, assets[inPage[motionID]]})
		} else if m, ok := fetched[motionID]; ok {
			groups = append(groups, []models.Asset{a, m})
		} else {
			// Dangling reference: the clip no longer exists in the store.
			groups = append(groups, []models.Asset{a})
		}
	}
	return groups, nil
}
