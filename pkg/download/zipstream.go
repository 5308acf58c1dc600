package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/internal/telemetry"
	"github.com/photofold/photofold/pkg/content"
	"github.com/photofold/photofold/pkg/library/models"
)

// StreamArchive writes one archive's assets as a zip stream to w. The ids
// are typically one sealed plan from PlanDownload. Entries are stored
// uncompressed since media files do not deflate usefully.
//
// Fails with models.ErrAccessDenied when the gate rejects the set, and
// models.ErrAssetNotFound when an id or its media bytes are missing.
func (s *Service) StreamArchive(ctx context.Context, principal string, assetIDs []string, w io.Writer) error {
	if len(assetIDs) == 0 {
		return models.ErrInvalidRequest
	}

	ctx, span := telemetry.StartSpan(ctx, "download.archive")
	defer span.End()

	if err := s.gate.RequireAssetsDownload(ctx, principal, assetIDs); err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}

	assets, err := s.source.GetAssetsByIDs(ctx, assetIDs)
	if err != nil {
		return err
	}
	if len(assets) < len(assetIDs) {
		return models.ErrAssetNotFound
	}

	start := time.Now()
	zw := zip.NewWriter(w)
	namer := newEntryNamer()
	var written int64

	for i := range assets {
		a := &assets[i]

		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     namer.entryName(a),
			Method:   zip.Store,
			Modified: a.TakenAt,
		})
		if err != nil {
			return fmt.Errorf("create zip entry for %s: %w", a.ID, err)
		}

		rc, err := s.content.Open(ctx, a.OriginalPath)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				return fmt.Errorf("asset %s: %w", a.ID, models.ErrAssetNotFound)
			}
			return fmt.Errorf("open content for %s: %w", a.ID, err)
		}

		n, err := io.Copy(entry, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("stream %s: %w", a.ID, err)
		}
		written += n
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	s.metrics.ObserveArchive(time.Since(start), len(assets), written)
	logger.Debug("archive streamed",
		"principal", principal,
		"assets", len(assets),
		"bytes", written,
		"duration_ms", logger.Duration(start),
	)
	return nil
}

// entryNamer assigns unique entry names within a single archive. The
// counter map is scoped to one StreamArchive call; archives are
// independent namespaces.
type entryNamer struct {
	seen map[string]int
}

func newEntryNamer() *entryNamer {
	return &entryNamer{seen: make(map[string]int)}
}

// entryName returns "<display><ext>" for the first occurrence of a base
// name and "<display>+<n><ext>" afterwards, n counting prior occurrences.
func (n *entryNamer) entryName(a *models.Asset) string {
	ext := a.Ext()
	base := a.OriginalName + ext
	count := n.seen[base]
	n.seen[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s+%d%s", a.OriginalName, count, ext)
}
