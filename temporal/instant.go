package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// Instant is an exact point on the timeline: seconds and nanoseconds
// since 1970-01-01T00:00:00Z.
type Instant struct {
	sec  int64
	nsec int32
}

// MinInstant and MaxInstant bound the representable timeline.
var (
	MinInstant = Instant{sec: -maxInstantSeconds}
	MaxInstant = Instant{sec: maxInstantSeconds}
)

// NewInstant validates epoch seconds and a nanosecond adjustment in [0, 1e9).
func NewInstant(sec int64, nsec int32) (Instant, error) {
	if nsec < 0 || nsec >= nsPerSecond {
		return Instant{}, errors.InvalidField(errors.PhaseConstruct, []string{"nanoseconds"}, nsec, "nanoseconds must be in 0..999999999")
	}
	return instantFromTD(timeDuration{sec: sec, nsec: nsec})
}

// InstantFromEpochMilliseconds builds an instant from milliseconds since the epoch.
func InstantFromEpochMilliseconds(ms int64) (Instant, error) {
	return instantFromTD(normalizeTD(floorDiv(ms, 1000), floorMod(ms, 1000)*1_000_000))
}

func instantFromTD(d timeDuration) (Instant, error) {
	if d.cmp(timeDuration{sec: -maxInstantSeconds}) < 0 || d.cmp(timeDuration{sec: maxInstantSeconds}) > 0 {
		return Instant{}, errors.RangeOverflow(errors.PhaseArithmetic, "instant outside supported range")
	}
	return Instant{sec: d.sec, nsec: d.nsec}, nil
}

// EpochSeconds returns whole seconds since the epoch (floor).
func (i Instant) EpochSeconds() int64 { return i.sec }

// Nanoseconds returns the sub-second part in [0, 1e9).
func (i Instant) Nanoseconds() int32 { return i.nsec }

// EpochMilliseconds returns milliseconds since the epoch (floor).
func (i Instant) EpochMilliseconds() int64 {
	return i.sec*1000 + int64(i.nsec)/1_000_000
}

func (i Instant) td() timeDuration {
	return timeDuration{sec: i.sec, nsec: i.nsec}
}

// Compare returns -1, 0 or 1.
func (i Instant) Compare(o Instant) int {
	return i.td().cmp(o.td())
}

// Equals reports whether both instants are identical.
func (i Instant) Equals(o Instant) bool {
	return i == o
}

func (i Instant) addTD(d timeDuration) (Instant, error) {
	return instantFromTD(i.td().add(d))
}

// timeOnly returns the time part of a duration that may not carry
// calendar units or days.
func timeOnly(d Duration, op string) (timeDuration, error) {
	if err := d.Validate(); err != nil {
		return timeDuration{}, err
	}
	if d.Years != 0 || d.Months != 0 || d.Weeks != 0 || d.Days != 0 {
		return timeDuration{}, errors.InvalidArgument(errors.PhaseArithmetic, []string{"duration"},
			op+" does not accept years, months, weeks or days")
	}
	return timeDurationFromComponents(0, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds)
}

// Add returns i + d. d may only carry hours and smaller units.
func (i Instant) Add(d Duration) (Instant, error) {
	td, err := timeOnly(d, "instant arithmetic")
	if err != nil {
		return Instant{}, err
	}
	return i.addTD(td)
}

// Subtract returns i - d.
func (i Instant) Subtract(d Duration) (Instant, error) {
	return i.Add(d.Negated())
}

// Until returns the duration from i to o.
func (i Instant) Until(o Instant, s DifferenceSettings) (Duration, error) {
	return differenceInstant(i, o, s, false)
}

// Since returns the duration from o to i.
func (i Instant) Since(o Instant, s DifferenceSettings) (Duration, error) {
	return differenceInstant(i, o, s, true)
}

func differenceInstant(a, b Instant, s DifferenceSettings, since bool) (Duration, error) {
	rs, err := resolveDifference(s, UnitHour, UnitNanosecond, UnitSecond)
	if err != nil {
		return Duration{}, err
	}
	mode := rs.mode
	if since {
		mode = mode.negate()
	}
	td := b.td().sub(a.td())
	td, err = roundTimeDuration(td, rs.increment, rs.smallest, mode)
	if err != nil {
		return Duration{}, err
	}
	d, err := balanceTimeDuration(td, rs.largest)
	if err != nil {
		return Duration{}, err
	}
	if since {
		d = d.Negated()
	}
	return d, nil
}

// Round rounds the instant to a multiple of the unit. Increments must
// divide a 24-hour day.
func (i Instant) Round(o RoundingOptions) (Instant, error) {
	if !o.Mode.Valid() {
		return Instant{}, errors.InvalidRounding("unknown rounding mode %d", o.Mode)
	}
	if o.SmallestUnit < UnitHour || o.SmallestUnit > UnitNanosecond {
		return Instant{}, errors.InvalidRounding("instants round to hour or smaller, got %s", o.SmallestUnit)
	}
	inc := o.Increment
	if inc == 0 {
		inc = 1
	}
	unitNs := unitNanoseconds(o.SmallestUnit)
	if err := validateIncrement(inc, nsPerDay/unitNs, true); err != nil {
		return Instant{}, err
	}
	r := i.td().round(makeIncrement(unitNs, inc), o.Mode.or(RoundHalfExpand), true)
	return instantFromTD(r)
}

// ToZonedDateTime pairs the instant with a time zone and calendar.
func (i Instant) ToZonedDateTime(tz *TimeZone, cal Calendar) (ZonedDateTime, error) {
	return NewZonedDateTime(i, tz, cal)
}

// Now samples the clock.
func Now(c Clock) (Instant, error) {
	sec, nsec := c.Now()
	return NewInstant(sec, nsec)
}
