package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultMatched = "matched"
	ResultPending = "pending"
	ResultError   = "error"

	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
	StatusDropped = "dropped"
)

var (
	GeoResolveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geodirectory_geo_resolve_total",
		Help: "Location resolutions by outcome",
	}, []string{"result"})
	GeoResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geodirectory_geo_resolve_duration_ms",
		Help:    "Location resolution duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	RecountTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geodirectory_poi_recount_total",
		Help: "Region poi count recomputations by status",
	}, []string{"status"})
	RecountScheduledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geodirectory_poi_recount_scheduled_total",
		Help: "Recount submissions by scheduler driver and status",
	}, []string{"driver", "status"})
	RegionCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodirectory_region_cache_hits_total",
		Help: "Region lookup cache hits",
	})
	RegionCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodirectory_region_cache_misses_total",
		Help: "Region lookup cache misses",
	})
)

func init() {
	prometheus.MustRegister(GeoResolveTotal)
	prometheus.MustRegister(GeoResolveDurationMs)
	prometheus.MustRegister(RecountTotal)
	prometheus.MustRegister(RecountScheduledTotal)
	prometheus.MustRegister(RegionCacheHitsTotal)
	prometheus.MustRegister(RegionCacheMissesTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
