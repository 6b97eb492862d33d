package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// Unit names a duration component. UnitAuto selects an operation default.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond
)

var unitNames = [...]string{
	UnitAuto:        "auto",
	UnitYear:        "year",
	UnitMonth:       "month",
	UnitWeek:        "week",
	UnitDay:         "day",
	UnitHour:        "hour",
	UnitMinute:      "minute",
	UnitSecond:      "second",
	UnitMillisecond: "millisecond",
	UnitMicrosecond: "microsecond",
	UnitNanosecond:  "nanosecond",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "unknown"
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u <= UnitNanosecond
}

// IsDateUnit reports whether u is year, month, week or day.
func (u Unit) IsDateUnit() bool {
	return u >= UnitYear && u <= UnitDay
}

// IsCalendarUnit reports whether u has no fixed length (year, month, week).
func (u Unit) IsCalendarUnit() bool {
	return u >= UnitYear && u <= UnitWeek
}

// ParseUnit maps a singular or plural unit name to a Unit.
func ParseUnit(s string) (Unit, bool) {
	for i, n := range unitNames {
		if s == n || s == n+"s" {
			return Unit(i), true
		}
	}
	return 0, false
}

// largerUnit returns the larger of two units (smaller enum value).
func largerUnit(a, b Unit) Unit {
	if a < b {
		return a
	}
	return b
}

func unitNanoseconds(u Unit) int64 {
	switch u {
	case UnitDay:
		return nsPerDay
	case UnitHour:
		return nsPerHour
	case UnitMinute:
		return nsPerMinute
	case UnitSecond:
		return nsPerSecond
	case UnitMillisecond:
		return 1_000_000
	case UnitMicrosecond:
		return 1_000
	case UnitNanosecond:
		return 1
	}
	return 0
}

// RoundingMode selects how a value between two increments is resolved.
// RoundDefault selects the operation default.
type RoundingMode uint8

const (
	RoundDefault RoundingMode = iota
	RoundCeil
	RoundFloor
	RoundExpand
	RoundTrunc
	RoundHalfCeil
	RoundHalfFloor
	RoundHalfExpand
	RoundHalfTrunc
	RoundHalfEven
)

var modeNames = [...]string{
	RoundDefault:    "default",
	RoundCeil:       "ceil",
	RoundFloor:      "floor",
	RoundExpand:     "expand",
	RoundTrunc:      "trunc",
	RoundHalfCeil:   "halfCeil",
	RoundHalfFloor:  "halfFloor",
	RoundHalfExpand: "halfExpand",
	RoundHalfTrunc:  "halfTrunc",
	RoundHalfEven:   "halfEven",
}

func (m RoundingMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Valid reports whether m is a known mode.
func (m RoundingMode) Valid() bool {
	return m <= RoundHalfEven
}

// ParseRoundingMode maps a mode name to a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, bool) {
	for i, n := range modeNames {
		if s == n {
			return RoundingMode(i), true
		}
	}
	return 0, false
}

func (m RoundingMode) or(def RoundingMode) RoundingMode {
	if m == RoundDefault {
		return def
	}
	return m
}

// negate swaps the direction of directed modes, used by since().
func (m RoundingMode) negate() RoundingMode {
	switch m {
	case RoundCeil:
		return RoundFloor
	case RoundFloor:
		return RoundCeil
	case RoundHalfCeil:
		return RoundHalfFloor
	case RoundHalfFloor:
		return RoundHalfCeil
	}
	return m
}

type unsignedRounding uint8

const (
	toZero unsignedRounding = iota
	toInfinity
	halfToZero
	halfToInfinity
	halfToEven
)

func unsignedMode(m RoundingMode, negative bool) unsignedRounding {
	switch m {
	case RoundCeil:
		if negative {
			return toZero
		}
		return toInfinity
	case RoundFloor:
		if negative {
			return toInfinity
		}
		return toZero
	case RoundExpand:
		return toInfinity
	case RoundTrunc:
		return toZero
	case RoundHalfCeil:
		if negative {
			return halfToZero
		}
		return halfToInfinity
	case RoundHalfFloor:
		if negative {
			return halfToInfinity
		}
		return halfToZero
	case RoundHalfExpand:
		return halfToInfinity
	case RoundHalfTrunc:
		return halfToZero
	default:
		return halfToEven
	}
}

// pickInfinity decides between the bound nearer zero and the one nearer
// infinity. cmp compares the distance to the zero bound with the distance
// to the infinity bound.
func pickInfinity(um unsignedRounding, cmp int, zeroOdd bool) bool {
	switch um {
	case toZero:
		return false
	case toInfinity:
		return true
	}
	if cmp < 0 {
		return false
	}
	if cmp > 0 {
		return true
	}
	switch um {
	case halfToZero:
		return false
	case halfToInfinity:
		return true
	}
	return zeroOdd
}

// roundInt64 rounds a signed integer to a multiple of step.
func roundInt64(v, step int64, mode RoundingMode) int64 {
	q := v / step
	r := v % step
	if r == 0 {
		return v
	}
	neg := v < 0
	zero := q * step
	inf := zero + step
	if neg {
		inf = zero - step
	}
	dz := absInt64(r)
	di := step - dz
	if pickInfinity(unsignedMode(mode, neg), cmpInt(dz, di), q%2 != 0) {
		return inf
	}
	return zero
}

// applyUnsignedRounding picks r1 or r2 for a quantity at progress num/den
// between them. r1 is |r1| increments from zero.
func applyUnsignedRounding(num, den timeDuration, r1Steps int64, um unsignedRounding) bool {
	if num.isZero() {
		return false
	}
	if num.cmp(den) == 0 {
		return true
	}
	twice := num.add(num)
	return pickInfinity(um, twice.cmp(den), r1Steps%2 != 0)
}

// RoundingOptions configures round() on date-time values.
type RoundingOptions struct {
	SmallestUnit Unit
	Increment    int64
	Mode         RoundingMode
}

// DifferenceSettings configures until() and since().
type DifferenceSettings struct {
	LargestUnit  Unit
	SmallestUnit Unit
	Increment    int64
	Mode         RoundingMode
}

// maximumIncrement returns the exclusive upper bound on increments for
// a unit, or 0 when the unit has none.
func maximumIncrement(u Unit) int64 {
	switch u {
	case UnitHour:
		return 24
	case UnitMinute, UnitSecond:
		return 60
	case UnitMillisecond, UnitMicrosecond, UnitNanosecond:
		return 1000
	}
	return 0
}

const maxRoundingIncrement = 1_000_000_000

func validateIncrement(inc int64, maximum int64, inclusive bool) error {
	if inc < 1 || inc > maxRoundingIncrement {
		return errors.InvalidRounding("rounding increment %d out of range", inc)
	}
	if maximum == 0 {
		return nil
	}
	limit := maximum
	if !inclusive {
		limit--
	}
	if inc > limit {
		return errors.InvalidRounding("rounding increment %d exceeds %d", inc, limit)
	}
	if maximum%inc != 0 {
		return errors.InvalidRounding("rounding increment %d does not divide %d", inc, maximum)
	}
	return nil
}

// resolvedSettings is a validated DifferenceSettings with defaults applied.
type resolvedSettings struct {
	largest   Unit
	smallest  Unit
	increment int64
	mode      RoundingMode
}

// resolveDifference validates settings for a difference operation.
// minUnit/maxUnit bound the units the value type supports and defLargest
// is the default largest unit.
func resolveDifference(s DifferenceSettings, maxUnit, minUnit, defLargest Unit) (resolvedSettings, error) {
	if !s.LargestUnit.Valid() || !s.SmallestUnit.Valid() {
		return resolvedSettings{}, errors.InvalidRounding("unknown unit")
	}
	if !s.Mode.Valid() {
		return resolvedSettings{}, errors.InvalidRounding("unknown rounding mode %d", s.Mode)
	}
	smallest := s.SmallestUnit
	if smallest == UnitAuto {
		smallest = minUnit
	}
	if smallest < maxUnit || smallest > minUnit {
		return resolvedSettings{}, errors.InvalidRounding("smallest unit %s not allowed here", smallest)
	}
	largest := s.LargestUnit
	if largest == UnitAuto {
		largest = largerUnit(defLargest, smallest)
	}
	if largest < maxUnit || largest > minUnit {
		return resolvedSettings{}, errors.InvalidRounding("largest unit %s not allowed here", largest)
	}
	if largest > smallest {
		return resolvedSettings{}, errors.InvalidRounding("largest unit %s smaller than smallest unit %s", largest, smallest)
	}
	inc := s.Increment
	if inc == 0 {
		inc = 1
	}
	if err := validateIncrement(inc, maximumIncrement(smallest), false); err != nil {
		return resolvedSettings{}, err
	}
	if inc > 1 && smallest.IsDateUnit() && largest != smallest {
		return resolvedSettings{}, errors.InvalidRounding("increment on %s requires largest unit %s", smallest, smallest)
	}
	return resolvedSettings{
		largest:   largest,
		smallest:  smallest,
		increment: inc,
		mode:      s.Mode.or(RoundTrunc),
	}, nil
}

// resolveRound validates options for round() on a date-time-like value.
// maxUnit is the largest unit the type can round to.
func resolveRound(o RoundingOptions, maxUnit Unit) (resolvedSettings, error) {
	if !o.Mode.Valid() {
		return resolvedSettings{}, errors.InvalidRounding("unknown rounding mode %d", o.Mode)
	}
	if o.SmallestUnit == UnitAuto || !o.SmallestUnit.Valid() {
		return resolvedSettings{}, errors.InvalidRounding("smallest unit is required")
	}
	if o.SmallestUnit < maxUnit {
		return resolvedSettings{}, errors.InvalidRounding("cannot round to %s", o.SmallestUnit)
	}
	inc := o.Increment
	if inc == 0 {
		inc = 1
	}
	maximum := maximumIncrement(o.SmallestUnit)
	if o.SmallestUnit == UnitDay {
		maximum = 1
	}
	if err := validateIncrement(inc, maximum, o.SmallestUnit == UnitDay); err != nil {
		return resolvedSettings{}, err
	}
	return resolvedSettings{
		smallest:  o.SmallestUnit,
		increment: inc,
		mode:      o.Mode.or(RoundHalfExpand),
	}, nil
}
