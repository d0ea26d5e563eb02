package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dantte-lp/antcolonyd/internal/metrics"
)

func TestNewCollectorRegistersEveryMetric(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	if c.Sessions == nil || c.Players == nil || c.MovesProcessed == nil ||
		c.EvaporateCycles == nil || c.Reconnects == nil || c.MatchmakingErrors == nil {
		t.Fatalf("NewCollector left a nil metric: %+v", c)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) != 6 {
		t.Fatalf("Gather() returned %d families, want 6", len(families))
	}
}

func TestCollectorSessionLifecycle(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RegisterSession()
	c.RegisterSession()
	c.UnregisterSession()

	var out dto.Metric
	if err := c.Sessions.Write(&out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := out.GetGauge().GetValue(); got != 1 {
		t.Fatalf("Sessions gauge = %v, want 1", got)
	}
}
