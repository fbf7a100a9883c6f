package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics()

	m.OnGenerateComplete(ctx, 12, time.Millisecond, nil)
	m.OnGenerateComplete(ctx, 0, time.Millisecond, errors.New("bad header"))
	m.OnRenderComplete(ctx, "html", 512, time.Millisecond, nil)
	m.OnCacheHit(ctx, "artifact")
	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 512)
	m.OnRequest(ctx, "POST", "/v1/matrix")
	m.OnResponse(ctx, "POST", "/v1/matrix", 200, time.Millisecond)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"generations ok", testutil.ToFloat64(m.generations.WithLabelValues("ok")), 1},
		{"generations error", testutil.ToFloat64(m.generations.WithLabelValues("error")), 1},
		{"renders", testutil.ToFloat64(m.renders.WithLabelValues("html", "ok")), 1},
		{"cache hit", testutil.ToFloat64(m.cache.WithLabelValues("artifact", "hit")), 1},
		{"cache miss", testutil.ToFloat64(m.cache.WithLabelValues("artifact", "miss")), 1},
		{"cache set", testutil.ToFloat64(m.cache.WithLabelValues("artifact", "set")), 1},
		{"requests", testutil.ToFloat64(m.requests.WithLabelValues("POST", "/v1/matrix", "200")), 1},
		{"in flight", testutil.ToFloat64(m.inFlight), 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.OnCacheHit(context.Background(), "matrix")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `nestedheaders_cache_operations_total{key_type="matrix",op="hit"} 1`) {
		t.Errorf("metrics output missing cache counter:\n%s", body)
	}
}

func TestMetricsRegister(t *testing.T) {
	defer Reset()
	m := NewMetrics()
	m.Register()

	if Pipeline() != PipelineHooks(m) || Cache() != CacheHooks(m) || HTTP() != HTTPHooks(m) {
		t.Error("Register should install the metrics as all hooks")
	}
}
