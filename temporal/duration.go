package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// Duration is a signed span broken into calendar and clock components.
// All non-zero components share one sign.
type Duration struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// maxCalendarComponent bounds years, months and weeks (exclusive).
const maxCalendarComponent = 1 << 32

var durationFieldNames = [...]string{
	"years", "months", "weeks", "days", "hours", "minutes",
	"seconds", "milliseconds", "microseconds", "nanoseconds",
}

func (d Duration) components() [10]int64 {
	return [10]int64{d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes,
		d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds}
}

// NewDuration validates the components and returns the duration.
func NewDuration(c Duration) (Duration, error) {
	if err := c.Validate(); err != nil {
		return Duration{}, err
	}
	return c, nil
}

// Validate checks the sign and range invariants.
func (d Duration) Validate() error {
	sign := 0
	for i, v := range d.components() {
		if v == 0 {
			continue
		}
		s := cmpInt(v, 0)
		if sign == 0 {
			sign = s
		} else if s != sign {
			return errors.InvalidField(errors.PhaseConstruct, []string{durationFieldNames[i]}, v, "duration components must share one sign")
		}
	}
	for i, v := range [...]int64{d.Years, d.Months, d.Weeks} {
		if v >= maxCalendarComponent || v <= -maxCalendarComponent {
			return errors.New(errors.PhaseConstruct, errors.KindRangeOverflow).
				Path(durationFieldNames[i]).Value(v).Detail("%s must be below 2^32", durationFieldNames[i]).Build()
		}
	}
	_, err := timeDurationFromComponents(d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds)
	return err
}

// Sign returns -1, 0 or 1.
func (d Duration) Sign() int {
	for _, v := range d.components() {
		if v != 0 {
			return cmpInt(v, 0)
		}
	}
	return 0
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Negated returns the duration with every component negated.
func (d Duration) Negated() Duration {
	return Duration{-d.Years, -d.Months, -d.Weeks, -d.Days, -d.Hours, -d.Minutes,
		-d.Seconds, -d.Milliseconds, -d.Microseconds, -d.Nanoseconds}
}

// Abs returns the duration with a non-negative sign.
func (d Duration) Abs() Duration {
	if d.Sign() < 0 {
		return d.Negated()
	}
	return d
}

func (d Duration) dateDuration() dateDuration {
	return dateDuration{years: d.Years, months: d.Months, weeks: d.Weeks, days: d.Days}
}

func (d Duration) hasCalendarUnits() bool {
	return d.Years != 0 || d.Months != 0 || d.Weeks != 0
}

// internalDuration separates calendar components from an exact time span.
type internalDuration struct {
	date dateDuration
	time timeDuration
}

func (d Duration) internal() (internalDuration, error) {
	td, err := timeDurationFromComponents(0, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds)
	if err != nil {
		return internalDuration{}, err
	}
	return internalDuration{date: d.dateDuration(), time: td}, nil
}

// internal24 folds days into the time span as 24-hour days.
func (d Duration) internal24() (internalDuration, error) {
	td, err := timeDurationFromComponents(d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds)
	if err != nil {
		return internalDuration{}, err
	}
	return internalDuration{date: dateDuration{years: d.Years, months: d.Months, weeks: d.Weeks}, time: td}, nil
}

func (id internalDuration) sign() int {
	if s := id.date.sign(); s != 0 {
		return s
	}
	return id.time.sign()
}

// defaultLargestUnit is the largest non-zero component, or nanosecond.
func (d Duration) defaultLargestUnit() Unit {
	for i, v := range d.components() {
		if v != 0 {
			return Unit(i + 1)
		}
	}
	return UnitNanosecond
}

// balanceTimeDuration spreads an exact span across units up to largest.
func balanceTimeDuration(td timeDuration, largest Unit) (Duration, error) {
	neg := td.sign() < 0
	a := td.abs()
	sec := a.sec
	sub := int64(a.nsec)
	var out Duration
	out.Milliseconds = sub / 1_000_000
	out.Microseconds = sub / 1_000 % 1_000
	out.Nanoseconds = sub % 1_000

	switch largest {
	case UnitYear, UnitMonth, UnitWeek, UnitDay:
		out.Days = sec / secondsPerDay
		sec %= secondsPerDay
		out.Hours = sec / 3600
		out.Minutes = sec / 60 % 60
		out.Seconds = sec % 60
	case UnitHour:
		out.Hours = sec / 3600
		out.Minutes = sec / 60 % 60
		out.Seconds = sec % 60
	case UnitMinute:
		out.Minutes = sec / 60
		out.Seconds = sec % 60
	case UnitSecond:
		out.Seconds = sec
	case UnitMillisecond:
		v, ok := mulAdd(sec, 1_000, out.Milliseconds)
		if !ok {
			return Duration{}, errors.RangeOverflow(errors.PhaseArithmetic, "milliseconds overflow")
		}
		out.Seconds, out.Milliseconds = 0, v
	case UnitMicrosecond:
		v, ok := mulAdd(sec, 1_000_000, sub/1_000)
		if !ok {
			return Duration{}, errors.RangeOverflow(errors.PhaseArithmetic, "microseconds overflow")
		}
		out.Seconds, out.Milliseconds, out.Microseconds = 0, 0, v
	case UnitNanosecond:
		v, ok := mulAdd(sec, nsPerSecond, sub)
		if !ok {
			return Duration{}, errors.RangeOverflow(errors.PhaseArithmetic, "nanoseconds overflow")
		}
		out.Seconds, out.Milliseconds, out.Microseconds, out.Nanoseconds = 0, 0, 0, v
	}
	if neg {
		out = out.Negated()
	}
	return out, nil
}

func mulAdd(a, m, b int64) (int64, bool) {
	if a > (1<<63-1-b)/m {
		return 0, false
	}
	return a*m + b, true
}

// fromInternal builds a Duration balanced up to largest.
func fromInternal(id internalDuration, largest Unit) (Duration, error) {
	d, err := balanceTimeDuration(id.time, largest)
	if err != nil {
		return Duration{}, err
	}
	d.Years = id.date.years
	d.Months = id.date.months
	d.Weeks = id.date.weeks
	d.Days += id.date.days
	return NewDuration(d)
}

// Add sums two durations. Neither may carry years, months or weeks.
func (d Duration) Add(o Duration) (Duration, error) {
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	if err := o.Validate(); err != nil {
		return Duration{}, err
	}
	if d.hasCalendarUnits() || o.hasCalendarUnits() {
		return Duration{}, errors.InvalidArgument(errors.PhaseArithmetic, []string{"duration"},
			"adding durations with years, months or weeks needs a reference date")
	}
	a, _ := d.internal24()
	b, _ := o.internal24()
	sum := a.time.add(b.time)
	if !sum.valid() {
		return Duration{}, errors.RangeOverflow(errors.PhaseArithmetic, "duration sum too large")
	}
	return balanceTimeDuration(sum, largerUnit(d.defaultLargestUnit(), o.defaultLargestUnit()))
}

// Subtract returns d - o.
func (d Duration) Subtract(o Duration) (Duration, error) {
	return d.Add(o.Negated())
}

// Compare orders two durations. Calendar units need a reference date.
func (d Duration) Compare(o Duration, relativeTo *PlainDate) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	if err := o.Validate(); err != nil {
		return 0, err
	}
	if d == o {
		return 0, nil
	}
	if !d.hasCalendarUnits() && !o.hasCalendarUnits() {
		a, _ := d.internal24()
		b, _ := o.internal24()
		return a.time.cmp(b.time), nil
	}
	if relativeTo == nil {
		return 0, errors.InvalidArgument(errors.PhaseArithmetic, []string{"relativeTo"},
			"comparing durations with years, months or weeks needs a reference date")
	}
	start := IsoDateTime{Date: relativeTo.iso}
	endOf := func(x Duration) (timeDuration, error) {
		id, _ := x.internal()
		dt, err := addDateTime(relativeTo.cal, start, id, Constrain)
		if err != nil {
			return timeDuration{}, err
		}
		sec, nsec := dt.utcEpoch()
		return timeDuration{sec: sec, nsec: nsec}, nil
	}
	a, err := endOf(d)
	if err != nil {
		return 0, err
	}
	b, err := endOf(o)
	if err != nil {
		return 0, err
	}
	return a.cmp(b), nil
}

// DurationRoundOptions configures Duration.Round.
type DurationRoundOptions struct {
	LargestUnit  Unit
	SmallestUnit Unit
	Increment    int64
	Mode         RoundingMode
	RelativeTo   *PlainDate
}

// Round rounds and rebalances the duration.
func (d Duration) Round(o DurationRoundOptions) (Duration, error) {
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	if o.LargestUnit == UnitAuto && o.SmallestUnit == UnitAuto {
		return Duration{}, errors.InvalidRounding("either largest or smallest unit is required")
	}
	defLargest := d.defaultLargestUnit()
	smallest := o.SmallestUnit
	if smallest == UnitAuto {
		smallest = UnitNanosecond
	}
	defLargest = largerUnit(defLargest, smallest)
	rs, err := resolveDifference(DifferenceSettings{
		LargestUnit:  o.LargestUnit,
		SmallestUnit: smallest,
		Increment:    o.Increment,
		Mode:         o.Mode.or(RoundHalfExpand),
	}, UnitYear, UnitNanosecond, defLargest)
	if err != nil {
		return Duration{}, err
	}

	if o.RelativeTo != nil {
		rel := o.RelativeTo
		id, err := d.internal()
		if err != nil {
			return Duration{}, err
		}
		start := IsoDateTime{Date: rel.iso}
		target, err := addDateTime(rel.cal, start, id, Constrain)
		if err != nil {
			return Duration{}, err
		}
		res, err := differencePlainDateTimeWithRounding(start, target, rel.cal, rs)
		if err != nil {
			return Duration{}, err
		}
		return fromInternal(res, rs.largest)
	}

	if d.hasCalendarUnits() || rs.largest.IsCalendarUnit() || rs.smallest.IsCalendarUnit() {
		return Duration{}, errors.InvalidArgument(errors.PhaseRound, []string{"relativeTo"},
			"rounding durations with years, months or weeks needs a reference date")
	}
	id, err := d.internal24()
	if err != nil {
		return Duration{}, err
	}
	if rs.smallest == UnitDay {
		r := id.time.round(makeIncrement(nsPerDay, rs.increment), rs.mode, false)
		if !r.valid() {
			return Duration{}, errors.RangeOverflow(errors.PhaseRound, "rounded duration too large")
		}
		id.time = r
	} else {
		id.time, err = roundTimeDuration(id.time, rs.increment, rs.smallest, rs.mode)
		if err != nil {
			return Duration{}, err
		}
	}
	return fromInternal(id, rs.largest)
}

// Total expresses the duration as a fractional number of unit.
func (d Duration) Total(unit Unit, relativeTo *PlainDate) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	if unit == UnitAuto || !unit.Valid() {
		return 0, errors.InvalidRounding("total needs a unit")
	}
	if relativeTo != nil {
		id, err := d.internal()
		if err != nil {
			return 0, err
		}
		start := IsoDateTime{Date: relativeTo.iso}
		target, err := addDateTime(relativeTo.cal, start, id, Constrain)
		if err != nil {
			return 0, err
		}
		return differencePlainDateTimeTotal(start, target, relativeTo.cal, unit)
	}
	if d.hasCalendarUnits() || unit.IsCalendarUnit() {
		return 0, errors.InvalidArgument(errors.PhaseRound, []string{"relativeTo"},
			"totals in years, months or weeks need a reference date")
	}
	id, err := d.internal24()
	if err != nil {
		return 0, err
	}
	return id.time.total(unitNanoseconds(unit)), nil
}
