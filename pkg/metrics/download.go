package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DownloadMetrics tracks download planning and archive streaming. A nil
// receiver is valid and records nothing.
type DownloadMetrics struct {
	plansTotal       prometheus.Counter
	planDuration     prometheus.Histogram
	planArchives     prometheus.Histogram
	planAssets       prometheus.Histogram
	archivesTotal    prometheus.Counter
	archiveDuration  prometheus.Histogram
	archiveAssets    prometheus.Histogram
	archiveBytes     prometheus.Counter
	memoryLaneTotal  prometheus.Counter
	memoryLaneDur    prometheus.Histogram
	memoryLaneAssets prometheus.Histogram
}

// NewDownloadMetrics registers download collectors on the global registry.
// Returns nil when metrics are disabled.
func NewDownloadMetrics() *DownloadMetrics {
	reg := Registry()
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &DownloadMetrics{
		plansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "photofold_download_plans_total",
			Help: "Total number of download plans computed",
		}),
		planDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_download_plan_duration_seconds",
			Help:    "Time spent computing a download plan",
			Buckets: prometheus.DefBuckets,
		}),
		planArchives: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_download_plan_archives",
			Help:    "Number of archives per computed plan",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		planAssets: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_download_plan_assets",
			Help:    "Number of assets per computed plan",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		archivesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "photofold_download_archives_total",
			Help: "Total number of archives streamed",
		}),
		archiveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_download_archive_duration_seconds",
			Help:    "Time spent streaming a single archive",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		archiveAssets: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_download_archive_assets",
			Help:    "Number of assets per streamed archive",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		archiveBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "photofold_download_archive_bytes_total",
			Help: "Total bytes written across all streamed archives",
		}),
		memoryLaneTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "photofold_memory_lane_queries_total",
			Help: "Total number of memory lane queries",
		}),
		memoryLaneDur: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_memory_lane_duration_seconds",
			Help:    "Time spent aggregating a memory lane response",
			Buckets: prometheus.DefBuckets,
		}),
		memoryLaneAssets: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "photofold_memory_lane_assets",
			Help:    "Number of assets per memory lane response",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// ObservePlan records a completed download plan.
func (m *DownloadMetrics) ObservePlan(d time.Duration, archives, assets int) {
	if m == nil {
		return
	}
	m.plansTotal.Inc()
	m.planDuration.Observe(d.Seconds())
	m.planArchives.Observe(float64(archives))
	m.planAssets.Observe(float64(assets))
}

// ObserveArchive records a fully streamed archive.
func (m *DownloadMetrics) ObserveArchive(d time.Duration, assets int, bytes int64) {
	if m == nil {
		return
	}
	m.archivesTotal.Inc()
	m.archiveDuration.Observe(d.Seconds())
	m.archiveAssets.Observe(float64(assets))
	m.archiveBytes.Add(float64(bytes))
}

// ObserveMemoryLane records a completed memory lane aggregation.
func (m *DownloadMetrics) ObserveMemoryLane(d time.Duration, assets int) {
	if m == nil {
		return
	}
	m.memoryLaneTotal.Inc()
	m.memoryLaneDur.Observe(d.Seconds())
	m.memoryLaneAssets.Observe(float64(assets))
}
