package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestGeoCollectorRecordsTransformOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeoCollector(reg)
	if err != nil {
		t.Fatalf("NewGeoCollector: %v", err)
	}

	collector.IncTransformOp("uv_from_ecef", "ok")
	collector.IncTransformOp("uv_from_ecef", "ok")
	collector.IncTransformOp("ecef_from_uv", "miss")

	if got := testutil.ToFloat64(collector.TransformOps.WithLabelValues("uv_from_ecef", "ok")); got != 2 {
		t.Fatalf("satview_transform_ops_total{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.TransformOps.WithLabelValues("ecef_from_uv", "miss")); got != 1 {
		t.Fatalf("satview_transform_ops_total{miss} = %v, want 1", got)
	}
}

func TestGeoCollectorRecordsReuseSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeoCollector(reg)
	if err != nil {
		t.Fatalf("NewGeoCollector: %v", err)
	}

	collector.ObserveReuseSearch("triangular", 7, 0.042)
	collector.SetReuseCacheSize("triangular", 7)

	if count := histogramSampleCount(t, reg, "satview_reuse_search_duration_seconds", map[string]string{
		"kind": "triangular",
	}); count != 1 {
		t.Fatalf("satview_reuse_search_duration_seconds sample_count = %d, want 1", count)
	}
	if got := testutil.ToFloat64(collector.ReuseCacheColors.WithLabelValues("triangular")); got != 7 {
		t.Fatalf("satview_reuse_cache_colors = %v, want 7", got)
	}
}

func TestGeoCollectorRegistrationIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewGeoCollector(reg)
	if err != nil {
		t.Fatalf("NewGeoCollector: %v", err)
	}
	second, err := NewGeoCollector(reg)
	if err != nil {
		t.Fatalf("NewGeoCollector (second): %v", err)
	}

	first.IncTransformOp("era_from_ecef", "ok")
	second.IncTransformOp("era_from_ecef", "ok")

	if got := testutil.ToFloat64(first.TransformOps.WithLabelValues("era_from_ecef", "ok")); got != 2 {
		t.Fatalf("collectors did not share the counter: got %v, want 2", got)
	}
}

func TestMetricsHandlerExposesAllSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeoCollector(reg)
	if err != nil {
		t.Fatalf("NewGeoCollector: %v", err)
	}
	collector.IncTransformOp("lla_from_uv", "ok")
	collector.ObserveReuseSearch("square", 4, 0.003)
	collector.SetReuseCacheSize("square", 4)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"satview_transform_ops_total",
		"satview_reuse_search_duration_seconds",
		"satview_reuse_cache_colors",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
