package telemetry_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProvider_RecordsMetrics(t *testing.T) {
	p := telemetry.NewProvider()

	p.RecordClassification("semantic", "RH", false, 2*time.Millisecond)
	p.RecordClassification("keyword", "RH", true, time.Millisecond)
	p.RecordTierFailure("remote")
	p.RecordTierSkipped("semantic")
	p.SetTierReady("semantic", true)
	p.RecordCacheLookup(true)
	p.RecordCacheLookup(false)
	p.RecordCacheLookup(false)
	p.SetCacheSize(7)
	p.RecordDelegateCall(10*time.Millisecond, errors.New("timeout"))
	p.SetBreakerState("remote", 2)
	p.RecordBatchSize(3)

	m := p.Metrics
	checks := map[string]float64{
		"classifications":  testutil.ToFloat64(m.Classifications.WithLabelValues("semantic", "RH")),
		"degraded":         testutil.ToFloat64(m.DegradedResults),
		"tier failures":    testutil.ToFloat64(m.TierFailures.WithLabelValues("remote")),
		"tier ready":       testutil.ToFloat64(m.TierReady.WithLabelValues("semantic")),
		"cache hits":       testutil.ToFloat64(m.CacheHits),
		"cache misses":     testutil.ToFloat64(m.CacheMisses),
		"cache size":       testutil.ToFloat64(m.CacheSize),
		"breaker state":    testutil.ToFloat64(m.BreakerState.WithLabelValues("remote")),
		"skipped semantic": testutil.ToFloat64(m.TierSkipped.WithLabelValues("semantic")),
	}
	want := map[string]float64{
		"classifications": 1, "degraded": 1, "tier failures": 1, "tier ready": 1,
		"cache hits": 1, "cache misses": 2, "cache size": 7, "breaker state": 2, "skipped semantic": 1,
	}
	for name, got := range checks {
		if got != want[name] {
			t.Errorf("%s = %v, want %v", name, got, want[name])
		}
	}
}

func TestProvider_Handler(t *testing.T) {
	p := telemetry.NewProvider()
	p.RecordCacheLookup(true)

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "email_classifier_cache_hits_total 1") {
		t.Error("exposition does not contain the cache hit counter")
	}
}

func TestNilProvider_IsSafe(t *testing.T) {
	var p *telemetry.Provider

	p.RecordClassification("keyword", "TI", false, time.Millisecond)
	p.RecordTierFailure("remote")
	p.SetTierReady("semantic", false)
	p.RecordCacheLookup(false)
	p.SetCacheSize(1)
	p.RecordDelegateCall(time.Millisecond, nil)

	_, span := p.StartSpan(context.Background(), "noop")
	span.End()
}
