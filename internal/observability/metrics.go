package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by SQL verb,
	// fed by the GORM logger's Trace hook.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "novelshelf_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// CatalogQueries counts catalog browse/search requests by sort key.
	CatalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novelshelf_catalog_queries_total",
		Help: "Total number of novel catalog queries by sort key",
	}, []string{"sort"})

	// LikeToggles counts like/unlike toggles by target entity and resulting action.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novelshelf_like_toggles_total",
		Help: "Total number of like toggles by target and action",
	}, []string{"target", "action"})

	// SubmissionsReviewed counts admin submission decisions by outcome.
	SubmissionsReviewed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novelshelf_submissions_reviewed_total",
		Help: "Total number of novel submissions reviewed by outcome",
	}, []string{"outcome"})

	// MediaUploads counts banner/cover uploads by result.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novelshelf_media_uploads_total",
		Help: "Total number of media uploads by result",
	}, []string{"result"})

	// TagCacheRefreshes counts tag suggestion cache refreshes by trigger.
	TagCacheRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novelshelf_tag_cache_refreshes_total",
		Help: "Total number of tag suggestion cache refreshes by trigger",
	}, []string{"trigger"})
)

// ObserveQueryLatency records one query's latency, labeled by its leading
// SQL verb. Anything outside the four CRUD verbs lands in "other".
func ObserveQueryLatency(sql string, elapsed time.Duration) {
	operation := "other"
	if fields := strings.Fields(sql); len(fields) > 0 {
		switch verb := strings.ToUpper(fields[0]); verb {
		case "SELECT", "INSERT", "UPDATE", "DELETE":
			operation = strings.ToLower(verb)
		}
	}
	DatabaseQueryLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
