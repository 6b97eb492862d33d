package resource

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewMetricsObserver(reg, "test", map[TypeID]string{1: "time_zone", 2: "text"})
	if err != nil {
		t.Fatal(err)
	}

	table := NewTable()
	table.Subscribe(obs)

	a, _ := table.Insert(1, "a")
	_, _ = table.Insert(1, "b")
	_, _ = table.InsertView(a, 2, "view")
	_, _ = table.Borrow(a, 1)
	table.ReturnBorrow(a)
	_, _ = table.Remove(a)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"created owned", obs.created.WithLabelValues("time_zone", "owned"), 2},
		{"created view", obs.created.WithLabelValues("text", "view"), 1},
		{"released owned", obs.released.WithLabelValues("time_zone", "owned"), 1},
		{"released view", obs.released.WithLabelValues("text", "view"), 1},
		{"live owned", obs.live.WithLabelValues("time_zone", "owned"), 1},
		{"live view", obs.live.WithLabelValues("text", "view"), 0},
		{"borrows", obs.borrowed.WithLabelValues("time_zone"), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tc.c); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMetricsObserverDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetricsObserver(reg, "dup", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := NewMetricsObserver(reg, "dup", nil); err == nil {
		t.Fatal("expected registration error")
	}
}

func TestMetricsObserverUnnamedType(t *testing.T) {
	obs := &MetricsObserver{names: nil}
	if got := obs.label(42); got != "42" {
		t.Fatalf("label: got %q", got)
	}
}
