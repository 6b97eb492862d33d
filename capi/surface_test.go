package capi

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/temporal-capi/temporal"
)

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := NewSurface(Options{Clock: temporal.FixedClock{Seconds: 1_710_000_000}})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHandleLifecycle(t *testing.T) {
	s := newTestSurface(t)

	tz, err := s.TimeZoneFromIdentifier("+05:30")
	if err != nil {
		t.Fatal(err)
	}
	z, err := s.InstantToZonedDateTime(FlatInstant{Seconds: 1_710_477_000}, tz, CalendarISO8601)
	if err != nil {
		t.Fatal(err)
	}
	// The zoned value holds its own zone; releasing the zone handle does
	// not invalidate it.
	if err := s.TimeZoneRelease(tz); err != nil {
		t.Fatal(err)
	}
	if ns, err := s.ZonedDateTimeOffsetNanoseconds(z); err != nil || ns != 5*3600e9+30*60e9 {
		t.Errorf("offset = %d, %v", ns, err)
	}

	view, err := s.ZonedDateTimeTimeZone(z)
	if err != nil {
		t.Fatal(err)
	}
	if id, err := s.TextString(view); err != nil || id != "+05:30" {
		t.Errorf("zone view = %q, %v", id, err)
	}
	if s.Live() != 2 {
		t.Errorf("live = %d, want 2", s.Live())
	}

	if err := s.ZonedDateTimeRelease(z); err != nil {
		t.Fatal(err)
	}
	if _, err := s.TextString(view); CodeOf(err) != InvalidHandle {
		t.Errorf("view after release: %v", err)
	}
	if _, err := s.ZonedDateTimeInstant(z); CodeOf(err) != InvalidHandle {
		t.Errorf("use after release: %v", err)
	}
	if err := s.ZonedDateTimeRelease(z); CodeOf(err) != InvalidHandle {
		t.Errorf("double release: %v", err)
	}
	if s.Live() != 0 {
		t.Errorf("live = %d, want 0", s.Live())
	}
}

func TestHandleTypeConfusion(t *testing.T) {
	s := newTestSurface(t)
	tz, err := s.TimeZoneFromIdentifier("UTC")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		fn   func() error
	}{
		{"zone as zoned", func() error { _, err := s.ZonedDateTimeInstant(tz); return err }},
		{"zone released as zoned", func() error { return s.ZonedDateTimeRelease(tz) }},
		{"zone as list", func() error { _, err := s.TransitionListLen(tz); return err }},
		{"null", func() error { _, err := s.TimeZoneOffsetAt(0, FlatInstant{}); return err }},
		{"never issued", func() error { _, err := s.TimeZoneOffsetAt(0x00ffffff, FlatInstant{}); return err }},
		{"generation without slot", func() error { _, err := s.TimeZoneOffsetAt(1<<24, FlatInstant{}); return err }},
		{"release generation without slot", func() error { return s.TimeZoneRelease(0xff000000) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.fn()); got != InvalidHandle {
				t.Errorf("code = %s, want invalid_handle", got)
			}
		})
	}
	// The table stays usable after rejected handles.
	if _, err := s.TimeZoneFromIdentifier("UTC"); err != nil {
		t.Errorf("after forged handles: %v", err)
	}
	// A view is released with TextRelease, never with its owner's release.
	view, err := s.TimeZoneIdentifier(tz)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.TimeZoneRelease(view); CodeOf(err) != InvalidHandle {
		t.Errorf("release view as zone: %v", err)
	}
	if err := s.TextRelease(view); err != nil {
		t.Errorf("drop view: %v", err)
	}
	if id, err := s.TimeZoneIdentifier(tz); err != nil || id == 0 {
		t.Errorf("zone survives view drop: %v", err)
	}
}

func TestSurfaceClose(t *testing.T) {
	s, err := NewSurface(Options{})
	if err != nil {
		t.Fatal(err)
	}
	tz, _ := s.TimeZoneFromIdentifier("UTC")
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.TimeZoneOffsetAt(tz, FlatInstant{}); CodeOf(err) != InvalidHandle {
		t.Errorf("after close: %v", err)
	}
	if _, err := s.TimeZoneFromIdentifier("UTC"); CodeOf(err) != Internal {
		t.Errorf("insert after close: %v", err)
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, err := NewSurface(Options{Logger: zap.New(core)})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	run := func() (err error) {
		defer s.guard("boom", &err)
		var m map[string]int
		m["x"] = 1
		return nil
	}
	if err := run(); CodeOf(err) != Internal {
		t.Fatalf("err = %v, want internal", err)
	}
	if n := logs.FilterMessage("recovered panic at boundary").Len(); n != 1 {
		t.Errorf("panic logged %d times", n)
	}
}

func TestSurfaceLogsFailuresAndHandles(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, err := NewSurface(Options{Logger: zap.New(core)})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.PlainDateParse("2024-13-01"); err == nil {
		t.Fatal("parse succeeded")
	}
	failed := logs.FilterMessage("operation failed").All()
	if len(failed) != 1 || failed[0].ContextMap()["op"] != "plain_date_parse" || failed[0].ContextMap()["code"] != "parse_failure" {
		t.Errorf("failure logs = %+v", failed)
	}

	h, _ := s.TextNew("x")
	_ = s.TextRelease(h)
	events := logs.FilterMessage("handle").All()
	if len(events) != 2 || events[0].ContextMap()["event"] != "created" || events[1].ContextMap()["type"] != "text" {
		t.Errorf("handle logs = %+v", events)
	}
}

func TestSurfaceMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewSurface(Options{Registerer: reg, MetricsNamespace: "capi_test"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	tz, _ := s.TimeZoneFromIdentifier("UTC")
	_, _ = s.TimeZoneIdentifier(tz)
	_, _ = s.TimeZoneOffsetAt(tz, FlatInstant{})

	if got := metricSum(t, reg, "capi_test_handles_live"); got != 2 {
		t.Errorf("live = %v, want 2", got)
	}
	if err := s.TimeZoneRelease(tz); err != nil {
		t.Fatal(err)
	}
	if got := metricSum(t, reg, "capi_test_handles_live"); got != 0 {
		t.Errorf("live after release = %v", got)
	}
	if got := metricSum(t, reg, "capi_test_handles_borrows_total"); got != 2 {
		t.Errorf("borrows = %v, want 2", got)
	}

	if _, err := NewSurface(Options{Registerer: reg, MetricsNamespace: "capi_test"}); err == nil {
		t.Error("duplicate registration accepted")
	}
}

func metricSum(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			sum += m.GetGauge().GetValue() + m.GetCounter().GetValue()
		}
	}
	return sum
}
