package capi

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/temporal-capi/errors"
	"github.com/wippyai/temporal-capi/resource"
	"github.com/wippyai/temporal-capi/temporal"
)

// Options configures a Surface.
type Options struct {
	// Clock is sampled by InstantNow. Defaults to the host's wall clock.
	Clock temporal.Clock

	// Logger receives boundary faults and, at debug level, handle
	// lifecycle events. Defaults to the package Logger.
	Logger *zap.Logger

	// Registerer, when set, receives handle lifecycle metrics.
	Registerer prometheus.Registerer

	// MetricsNamespace prefixes metric names. Defaults to "temporal".
	MetricsNamespace string
}

// Surface is the operation surface: every entry point of the boundary as a
// Go method over flat values and handles. Methods never panic; faults are
// recovered and reported as Internal.
type Surface struct {
	clock   temporal.Clock
	log     *zap.Logger
	table   *resource.Table
	metrics *resource.MetricsObserver
	zones   resource.Typed[*temporal.TimeZone]
	zoned   resource.Typed[temporal.ZonedDateTime]
	texts   resource.Typed[string]
	views   resource.Typed[string]
	lists   resource.Typed[[]temporal.Transition]
}

// NewSurface creates a Surface with its own handle table.
func NewSurface(opts Options) (*Surface, error) {
	if opts.Clock == nil {
		opts.Clock = temporal.WallClock{}
	}
	if opts.Logger == nil {
		opts.Logger = Logger()
	}
	if opts.MetricsNamespace == "" {
		opts.MetricsNamespace = "temporal"
	}

	table := resource.NewTable()
	s := &Surface{
		clock: opts.Clock,
		log:   opts.Logger,
		table: table,
		zones: resource.NewTyped[*temporal.TimeZone](table, TypeTimeZone),
		zoned: resource.NewTyped[temporal.ZonedDateTime](table, TypeZonedDateTime),
		texts: resource.NewTyped[string](table, TypeText),
		views: resource.NewTyped[string](table, TypeTextView),
		lists: resource.NewTyped[[]temporal.Transition](table, TypeTransitionList),
	}

	if opts.Registerer != nil {
		m, err := resource.NewMetricsObserver(opts.Registerer, opts.MetricsNamespace, TypeNames())
		if err != nil {
			return nil, err
		}
		s.metrics = m
		table.Subscribe(m)
	}
	if s.log.Core().Enabled(zap.DebugLevel) {
		table.Subscribe(&logObserver{log: s.log})
	}
	return s, nil
}

// Live returns the number of live handles, views included.
func (s *Surface) Live() int {
	return s.table.Len()
}

// Close releases every handle. Handles issued by this Surface are invalid
// afterwards.
func (s *Surface) Close() error {
	if n := s.table.Len(); n > 0 {
		s.log.Debug("releasing live handles on close", zap.Int("count", n))
	}
	return s.table.Close()
}

// guard converts a panic into an Internal error and logs failures.
func (s *Surface) guard(op string, errp *error) {
	if r := recover(); r != nil {
		s.log.Error("recovered panic at boundary",
			zap.String("op", op),
			zap.Any("panic", r),
			zap.Stack("stack"))
		*errp = errors.Internal(fmt.Errorf("%s: %v", op, r))
		return
	}
	if *errp != nil {
		s.log.Debug("operation failed",
			zap.String("op", op),
			zap.Stringer("code", CodeOf(*errp)),
			zap.Error(*errp))
	}
}

type logObserver struct {
	log *zap.Logger
}

func (o *logObserver) OnResourceEvent(e resource.Event) {
	if e.Type == resource.EventBorrowed || e.Type == resource.EventBorrowReturned {
		return
	}
	fields := []zap.Field{
		zap.Stringer("event", e.Type),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.String("type", TypeName(e.TypeID)),
	}
	if e.Parent != 0 {
		fields = append(fields, zap.Uint32("parent", uint32(e.Parent)))
	}
	o.log.Debug("handle", fields...)
}
