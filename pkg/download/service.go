// Package download implements the archive download core: paged retrieval
// of assets from the library store, packing into size-bounded archive
// plans with live-photo pairing, and streaming a planned archive as a zip.
package download

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/internal/telemetry"
	"github.com/photofold/photofold/pkg/content"
	"github.com/photofold/photofold/pkg/library/models"
	"github.com/photofold/photofold/pkg/metrics"
)

const (
	// DefaultPageSize is how many assets each store page holds.
	DefaultPageSize = 2500

	// DefaultTargetSize is the default archive size threshold (4 GiB).
	DefaultTargetSize = int64(4) << 30
)

// AssetSource is the library store surface the download core consumes.
type AssetSource interface {
	// GetAssetsByIDs resolves assets in input order, skipping missing ids.
	GetAssetsByIDs(ctx context.Context, ids []string) ([]models.Asset, error)

	// AssetsByAlbum and AssetsByOwner return one page per call; an empty
	// NextCursor signals exhaustion.
	AssetsByAlbum(ctx context.Context, albumID, cursor string, limit int) (*models.AssetPage, error)
	AssetsByOwner(ctx context.Context, ownerID, cursor string, limit int) (*models.AssetPage, error)
}

// Gate performs the per-selection download permission checks.
type Gate interface {
	RequireAssetsDownload(ctx context.Context, principal string, assetIDs []string) error
	RequireAlbumDownload(ctx context.Context, principal, albumID string) error
	RequireOwnerDownload(ctx context.Context, principal, ownerID string) error
}

// Selection names what to download. Exactly one field should be set;
// when several are set the priority is AssetIDs, then AlbumID, then
// OwnerID. An empty selection is an invalid request.
type Selection struct {
	AssetIDs []string `json:"asset_ids,omitempty"`
	AlbumID  string   `json:"album_id,omitempty"`
	OwnerID  string   `json:"owner_id,omitempty"`
}

// Config tunes the download service.
type Config struct {
	// PageSize is the store page size. Default: DefaultPageSize.
	PageSize int

	// TargetSize is the default archive size threshold in bytes, used
	// when a request does not override it. Default: DefaultTargetSize.
	TargetSize int64

	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.DownloadMetrics
}

// Service is the download core. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	source  AssetSource
	gate    Gate
	content content.Store
	config  Config
	metrics *metrics.DownloadMetrics
}

// NewService creates a download service over the given store, gate, and
// media content store.
func NewService(source AssetSource, gate Gate, contentStore content.Store, config Config) *Service {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.TargetSize == 0 {
		config.TargetSize = DefaultTargetSize
	}
	return &Service{
		source:  source,
		gate:    gate,
		content: contentStore,
		config:  config,
		metrics: config.Metrics,
	}
}

// PlanDownload resolves a selection into size-bounded archive plans.
//
// targetSize overrides the configured threshold when non-nil; a value of
// zero or below makes every asset seal its own archive. The selection is
// validated and permission-checked before any asset is fetched.
func (s *Service) PlanDownload(ctx context.Context, principal string, sel Selection, targetSize *int64) (*DownloadInfo, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "download.plan")
	defer span.End()

	src, err := s.openSource(ctx, principal, sel)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	target := s.config.TargetSize
	if targetSize != nil {
		target = *targetSize
	}

	pl := &planner{
		source: src,
		lookup: s.source.GetAssetsByIDs,
		target: target,
	}
	archives, err := pl.plan(ctx)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	info := newDownloadInfo(archives)
	telemetry.SetAttributes(ctx,
		attribute.Int("download.archives", len(info.Archives)),
		attribute.Int("download.assets", info.assetCount()),
		attribute.Int64("download.total_size", info.TotalSizeBytes),
	)
	s.metrics.ObservePlan(time.Since(start), len(info.Archives), info.assetCount())
	logger.Debug("download planned",
		"principal", principal,
		"archives", len(info.Archives),
		"total_size", info.TotalSizeBytes,
		"duration_ms", logger.Duration(start),
	)
	return info, nil
}

// openSource validates the selection, runs the matching access check once,
// and returns the page source for it. Selection modes are checked in fixed
// priority order: explicit ids, then album, then owner.
func (s *Service) openSource(ctx context.Context, principal string, sel Selection) (*pageSource, error) {
	switch {
	case len(sel.AssetIDs) > 0:
		if err := s.gate.RequireAssetsDownload(ctx, principal, sel.AssetIDs); err != nil {
			return nil, err
		}
		return newIDPageSource(s.source, sel.AssetIDs), nil

	case sel.AlbumID != "":
		if err := s.gate.RequireAlbumDownload(ctx, principal, sel.AlbumID); err != nil {
			return nil, err
		}
		return newAlbumPageSource(s.source, sel.AlbumID, s.config.PageSize), nil

	case sel.OwnerID != "":
		if err := s.gate.RequireOwnerDownload(ctx, principal, sel.OwnerID); err != nil {
			return nil, err
		}
		return newOwnerPageSource(s.source, sel.OwnerID, s.config.PageSize), nil

	default:
		return nil, models.ErrInvalidRequest
	}
}
