package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GeoCollector bundles Prometheus metrics for the coordinate-transform and
// frequency-reuse layers and provides a ready-made /metrics handler.
type GeoCollector struct {
	gatherer prometheus.Gatherer

	TransformOps     *prometheus.CounterVec
	ReuseSearches    *prometheus.HistogramVec
	ReuseCacheColors *prometheus.GaugeVec
}

// NewGeoCollector registers the metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil. Registration is
// idempotent: an already-registered collector of the same type is reused.
func NewGeoCollector(reg prometheus.Registerer) (*GeoCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "satview_transform_ops_total",
		Help: "Total coordinate-transform operations, labeled by transform kind and outcome.",
	}, []string{"kind", "outcome"})
	ops, err := registerCounterVec(reg, ops, "satview_transform_ops_total")
	if err != nil {
		return nil, err
	}

	searches := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "satview_reuse_search_duration_seconds",
		Help:    "Duration of reuse-matrix brute-force searches, labeled by lattice kind.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"kind"})
	searches, err = registerHistogramVec(reg, searches, "satview_reuse_search_duration_seconds")
	if err != nil {
		return nil, err
	}

	cacheColors := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "satview_reuse_cache_colors",
		Help: "Highest color count cached per lattice kind.",
	}, []string{"kind"})
	cacheColors, err = registerGaugeVec(reg, cacheColors, "satview_reuse_cache_colors")
	if err != nil {
		return nil, err
	}

	return &GeoCollector{
		gatherer:         gatherer,
		TransformOps:     ops,
		ReuseSearches:    searches,
		ReuseCacheColors: cacheColors,
	}, nil
}

// IncTransformOp records one transform operation. outcome is "ok" for a
// finite result, "miss" for a ray that cleared the ellipsoid, and "error"
// for rejected input.
func (c *GeoCollector) IncTransformOp(kind, outcome string) {
	if c == nil || c.TransformOps == nil {
		return
	}
	c.TransformOps.WithLabelValues(kind, outcome).Inc()
}

// ObserveReuseSearch records the duration of a reuse-matrix search.
func (c *GeoCollector) ObserveReuseSearch(kind string, _ int, seconds float64) {
	if c == nil || c.ReuseSearches == nil {
		return
	}
	c.ReuseSearches.WithLabelValues(kind).Observe(seconds)
}

// SetReuseCacheSize updates the cached color-count gauge for a lattice kind.
func (c *GeoCollector) SetReuseCacheSize(kind string, colors int) {
	if c == nil || c.ReuseCacheColors == nil {
		return
	}
	c.ReuseCacheColors.WithLabelValues(kind).Set(float64(colors))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *GeoCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
