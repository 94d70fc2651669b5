package metrics

import (
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusObserver_Records(t *testing.T) {
	reg := promclient.NewRegistry()
	o, err := NewPrometheusObserver("test", reg)
	if err != nil {
		t.Fatalf("new observer: %v", err)
	}

	o.ObserveRanking(20*time.Millisecond, 42)
	o.ObserveRanking(5*time.Millisecond, 3)
	o.ObserveError("missing_habits")
	o.ObserveError("")

	if got := testutil.CollectAndCount(o.duration); got != 1 {
		t.Fatalf("expected one duration series, got %d", got)
	}
	if got := testutil.ToFloat64(o.errors.WithLabelValues("missing_habits")); got != 1 {
		t.Fatalf("expected 1 missing_habits error, got %v", got)
	}
	if got := testutil.ToFloat64(o.errors.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty reason to map to unknown, got %v", got)
	}
}

func TestPrometheusObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := promclient.NewRegistry()
	first, err := NewPrometheusObserver("test", reg)
	if err != nil {
		t.Fatalf("first observer: %v", err)
	}
	second, err := NewPrometheusObserver("test", reg)
	if err != nil {
		t.Fatalf("second observer: %v", err)
	}

	first.ObserveError("db")
	if got := testutil.ToFloat64(second.errors.WithLabelValues("db")); got != 1 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

func TestPrometheusObserver_NilSafe(t *testing.T) {
	var o *PrometheusObserver
	o.ObserveRanking(time.Second, 10)
	o.ObserveError("db")
}
