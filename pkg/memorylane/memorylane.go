// Package memorylane builds "on this day" views: for each of the past N
// years it collects the owner's assets taken on the anniversary of an
// anchor date. The per-year queries are independent and run concurrently.
package memorylane

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/pkg/library/models"
	"github.com/photofold/photofold/pkg/metrics"
)

// DateStore is the asset lookup the aggregator needs.
type DateStore interface {
	AssetsOnDate(ctx context.Context, ownerID string, date time.Time) ([]models.Asset, error)
}

// Entry is one year's worth of anniversary assets.
type Entry struct {
	Title    string         `json:"title"`
	YearsAgo int            `json:"years_ago"`
	Assets   []models.Asset `json:"assets"`
}

// Aggregator fans out per-year anniversary queries.
type Aggregator struct {
	store   DateStore
	metrics *metrics.DownloadMetrics
}

// New creates a memory lane aggregator over the given store.
func New(store DateStore, m *metrics.DownloadMetrics) *Aggregator {
	return &Aggregator{store: store, metrics: m}
}

// MemoryLane returns one entry per year back from the anchor date, newest
// first, skipping years with no assets. The anchor year itself is excluded.
// Queries run concurrently; the first store error cancels the rest.
func (a *Aggregator) MemoryLane(ctx context.Context, ownerID string, anchor time.Time, years int) ([]Entry, error) {
	if years < 1 {
		return nil, fmt.Errorf("%w: years must be at least 1", models.ErrInvalidRequest)
	}

	start := time.Now()
	results := make([]Entry, years)

	g, gctx := errgroup.WithContext(ctx)
	for back := 1; back <= years; back++ {
		g.Go(func() error {
			date := anchor.AddDate(-back, 0, 0)
			assets, err := a.store.AssetsOnDate(gctx, ownerID, date)
			if err != nil {
				return fmt.Errorf("assets on %s: %w", date.Format("2006-01-02"), err)
			}
			results[back-1] = Entry{
				Title:    title(back, date),
				YearsAgo: back,
				Assets:   assets,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, years)
	total := 0
	for _, e := range results {
		if len(e.Assets) == 0 {
			continue
		}
		entries = append(entries, e)
		total += len(e.Assets)
	}

	a.metrics.ObserveMemoryLane(time.Since(start), total)
	logger.Debug("memory lane aggregated",
		"owner", ownerID,
		"years", years,
		"entries", len(entries),
		"assets", total,
		"duration_ms", logger.Duration(start))

	return entries, nil
}

func title(yearsAgo int, date time.Time) string {
	if yearsAgo == 1 {
		return fmt.Sprintf("1 year since %s", date.Format("January 2, 2006"))
	}
	return fmt.Sprintf("%d years since %s", yearsAgo, date.Format("January 2, 2006"))
}
