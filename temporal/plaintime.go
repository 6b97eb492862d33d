package temporal

// PlainTime is a wall-clock time with no date or zone.
type PlainTime struct {
	iso IsoTime
}

// NewPlainTime validates the time slots.
func NewPlainTime(t IsoTime) (PlainTime, error) {
	if _, err := regulateISOTime(int64(t.Hour), int64(t.Minute), int64(t.Second),
		int64(t.Millisecond), int64(t.Microsecond), int64(t.Nanosecond), Reject); err != nil {
		return PlainTime{}, err
	}
	return PlainTime{iso: t}, nil
}

// ISO returns the time slots.
func (t PlainTime) ISO() IsoTime { return t.iso }

// Add adds the clock part of a duration, wrapping past midnight.
// Calendar and day components are ignored.
func (t PlainTime) Add(d Duration) (PlainTime, error) {
	if err := d.Validate(); err != nil {
		return PlainTime{}, err
	}
	id, err := d.internal()
	if err != nil {
		return PlainTime{}, err
	}
	_, out := addTime(t.iso, id.time)
	return PlainTime{iso: out}, nil
}

// Subtract subtracts the clock part of a duration.
func (t PlainTime) Subtract(d Duration) (PlainTime, error) {
	return t.Add(d.Negated())
}

// Until returns the duration from t to o.
func (t PlainTime) Until(o PlainTime, s DifferenceSettings) (Duration, error) {
	return differencePlainTime(t, o, s, false)
}

// Since returns the duration from o to t.
func (t PlainTime) Since(o PlainTime, s DifferenceSettings) (Duration, error) {
	return differencePlainTime(t, o, s, true)
}

func differencePlainTime(a, b PlainTime, s DifferenceSettings, since bool) (Duration, error) {
	rs, err := resolveDifference(s, UnitHour, UnitNanosecond, UnitHour)
	if err != nil {
		return Duration{}, err
	}
	if since {
		rs.mode = rs.mode.negate()
	}
	td := differenceTime(a.iso, b.iso)
	td, err = roundTimeDuration(td, rs.increment, rs.smallest, rs.mode)
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

// Round rounds the time, wrapping 24:00 to 00:00.
func (t PlainTime) Round(o RoundingOptions) (PlainTime, error) {
	rs, err := resolveRound(o, UnitHour)
	if err != nil {
		return PlainTime{}, err
	}
	_, out := roundISOTime(t.iso, rs.increment, rs.smallest, rs.mode)
	return PlainTime{iso: out}, nil
}

// Compare orders two times.
func (t PlainTime) Compare(o PlainTime) int {
	return compareISOTime(t.iso, o.iso)
}

// Equals reports whether both times are identical.
func (t PlainTime) Equals(o PlainTime) bool {
	return t == o
}
