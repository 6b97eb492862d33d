package temporal

import (
	"sort"
	"strings"
	"time"

	"github.com/wippyai/temporal-capi/errors"
)

type zoneKind uint8

const (
	zoneUTC zoneKind = iota
	zoneOffset
	zoneNamed
)

// TimeZone resolves wall-clock values to instants. It is immutable.
type TimeZone struct {
	id       string
	kind     zoneKind
	offsetNs int64
	loc      *time.Location
}

// UTC is the zero-offset time zone.
var UTC = &TimeZone{id: "UTC", kind: zoneUTC}

// maxOffsetNs is exclusive: offsets lie strictly within one day.
const maxOffsetNs = nsPerDay

// TimeZoneFromIdentifier resolves "UTC", a numeric offset such as
// "+05:30", or an IANA name.
func TimeZoneFromIdentifier(id string) (*TimeZone, error) {
	if id == "" {
		return nil, errors.UnknownTimeZone(id, nil)
	}
	if strings.EqualFold(id, "UTC") {
		return UTC, nil
	}
	if id[0] == '+' || id[0] == '-' {
		p := &parser{s: id}
		off, minutesOnly, err := p.offset()
		if err != nil || !p.done() || !minutesOnly {
			return nil, errors.UnknownTimeZone(id, err)
		}
		return TimeZoneFromOffset(off)
	}
	if !calendarDataBundled {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidIdentifier).
			Value(id).Detail("time zone %q requires bundled zone data", id).Build()
	}
	if id == "Local" || strings.Contains(id, "..") || strings.HasPrefix(id, "/") {
		return nil, errors.UnknownTimeZone(id, nil)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, errors.UnknownTimeZone(id, err)
	}
	return &TimeZone{id: id, kind: zoneNamed, loc: loc}, nil
}

// TimeZoneFromOffset returns a fixed-offset zone. Offsets are whole
// minutes so the identifier resolves back to the same zone.
func TimeZoneFromOffset(offsetNs int64) (*TimeZone, error) {
	if offsetNs <= -maxOffsetNs || offsetNs >= maxOffsetNs {
		return nil, errors.InvalidField(errors.PhaseResolve, []string{"offset"}, offsetNs, "offset must be within one day")
	}
	if offsetNs%nsPerMinute != 0 {
		return nil, errors.InvalidField(errors.PhaseResolve, []string{"offset"}, offsetNs, "offset must be whole minutes")
	}
	return &TimeZone{id: formatOffset(offsetNs, precision{minute: true}), kind: zoneOffset, offsetNs: offsetNs}, nil
}

// Identifier returns the zone identifier.
func (tz *TimeZone) Identifier() string {
	return tz.id
}

func (tz *TimeZone) String() string { return tz.id }

// Equals reports whether both zones have the same identifier.
func (tz *TimeZone) Equals(o *TimeZone) bool {
	return tz.id == o.id
}

// IsFixed reports whether the zone never transitions.
func (tz *TimeZone) IsFixed() bool {
	return tz.kind != zoneNamed
}

// OffsetNanosecondsFor returns the UTC offset in effect at an instant.
func (tz *TimeZone) OffsetNanosecondsFor(i Instant) int64 {
	return tz.offsetAt(i.sec, i.nsec)
}

func (tz *TimeZone) offsetAt(sec int64, nsec int32) int64 {
	switch tz.kind {
	case zoneUTC:
		return 0
	case zoneOffset:
		return tz.offsetNs
	}
	_, off := time.Unix(sec, int64(nsec)).In(tz.loc).Zone()
	return int64(off) * nsPerSecond
}

// isoDateTimeFor returns the wall-clock reading of an instant.
func (tz *TimeZone) isoDateTimeFor(i Instant) IsoDateTime {
	off := timeDurationFromNanoseconds(tz.OffsetNanosecondsFor(i))
	local := timeDuration{sec: i.sec, nsec: i.nsec}.add(off)
	return isoDateTimeFromEpoch(local.sec, local.nsec)
}

// possibleInstants returns every instant whose wall-clock reading is dt,
// in ascending order.
func (tz *TimeZone) possibleInstants(dt IsoDateTime) ([]Instant, error) {
	if !isoDateTimeWithinLimits(dt) {
		return nil, errors.RangeOverflow(errors.PhaseArithmetic, "date-time outside supported range")
	}
	sec, nsec := dt.utcEpoch()
	wall := timeDuration{sec: sec, nsec: nsec}
	var offsets []int64
	if tz.kind != zoneNamed {
		offsets = []int64{tz.offsetAt(0, 0)}
	} else {
		before := tz.offsetAt(sec-secondsPerDay, nsec)
		after := tz.offsetAt(sec+secondsPerDay, nsec)
		offsets = []int64{before}
		if after != before {
			offsets = append(offsets, after)
		}
	}
	var out []Instant
	for _, off := range offsets {
		cand := wall.sub(timeDurationFromNanoseconds(off))
		if tz.kind == zoneNamed && tz.offsetAt(cand.sec, cand.nsec) != off {
			continue
		}
		inst, err := instantFromTD(cand)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out, nil
}

// Disambiguation picks an instant for a wall-clock value that occurs zero
// or two times. The zero value rejects ambiguous and skipped times.
type Disambiguation uint8

const (
	DisambiguateReject Disambiguation = iota
	DisambiguateCompatible
	DisambiguateEarlier
	DisambiguateLater
)

var disambiguationNames = [...]string{"reject", "compatible", "earlier", "later"}

func (d Disambiguation) String() string {
	if int(d) < len(disambiguationNames) {
		return disambiguationNames[d]
	}
	return "unknown"
}

// Valid reports whether d is a known policy.
func (d Disambiguation) Valid() bool {
	return d <= DisambiguateLater
}

// ParseDisambiguation maps a policy name to a Disambiguation.
func ParseDisambiguation(s string) (Disambiguation, bool) {
	for i, n := range disambiguationNames {
		if s == n {
			return Disambiguation(i), true
		}
	}
	return 0, false
}

// instantFor resolves a wall-clock value under a disambiguation policy.
func (tz *TimeZone) instantFor(dt IsoDateTime, d Disambiguation) (Instant, error) {
	if !d.Valid() {
		return Instant{}, errors.InvalidArgument(errors.PhaseResolve, []string{"disambiguation"}, "unknown disambiguation")
	}
	possible, err := tz.possibleInstants(dt)
	if err != nil {
		return Instant{}, err
	}
	switch {
	case len(possible) == 1:
		return possible[0], nil
	case len(possible) > 1:
		switch d {
		case DisambiguateEarlier, DisambiguateCompatible:
			return possible[0], nil
		case DisambiguateLater:
			return possible[len(possible)-1], nil
		}
		return Instant{}, errors.AmbiguousTime("%s is ambiguous in %s", formatISODateTime(dt, precisionAuto), tz.id)
	}
	if d == DisambiguateReject {
		return Instant{}, errors.AmbiguousTime("%s does not exist in %s", formatISODateTime(dt, precisionAuto), tz.id)
	}
	sec, nsec := dt.utcEpoch()
	before := tz.offsetAt(sec-secondsPerDay, nsec)
	after := tz.offsetAt(sec+secondsPerDay, nsec)
	gap := timeDurationFromNanoseconds(after - before)
	if d == DisambiguateEarlier {
		shifted, err := dt.addTime(gap.neg())
		if err != nil {
			return Instant{}, err
		}
		p, err := tz.possibleInstants(shifted)
		if err != nil {
			return Instant{}, err
		}
		if len(p) == 0 {
			return Instant{}, errors.AmbiguousTime("no instant near %s", formatISODateTime(dt, precisionAuto))
		}
		return p[0], nil
	}
	shifted, err := dt.addTime(gap)
	if err != nil {
		return Instant{}, err
	}
	p, err := tz.possibleInstants(shifted)
	if err != nil {
		return Instant{}, err
	}
	if len(p) == 0 {
		return Instant{}, errors.AmbiguousTime("no instant near %s", formatISODateTime(dt, precisionAuto))
	}
	return p[len(p)-1], nil
}

// InstantFor resolves a plain date-time to an instant.
func (tz *TimeZone) InstantFor(dt PlainDateTime, d Disambiguation) (Instant, error) {
	return tz.instantFor(dt.iso, d)
}

// startOfDay returns the first instant of an ISO date.
func (tz *TimeZone) startOfDay(date IsoDate) (Instant, error) {
	midnight := IsoDateTime{Date: date}
	possible, err := tz.possibleInstants(midnight)
	if err != nil {
		return Instant{}, err
	}
	if len(possible) > 0 {
		return possible[0], nil
	}
	sec, nsec := midnight.utcEpoch()
	from := Instant{sec: sec - secondsPerDay, nsec: nsec}
	next, ok := tz.NextTransition(from)
	if !ok {
		return Instant{}, errors.AmbiguousTime("no start of day for %s in %s", formatISODate(date), tz.id)
	}
	return next.At, nil
}

// Transition is a change of UTC offset.
type Transition struct {
	At           Instant
	OffsetBefore int64
	OffsetAfter  int64
}

// maxTransitionScan bounds the zone periods examined by one lookup.
const maxTransitionScan = 4096

// NextTransition returns the first offset change strictly after i.
func (tz *TimeZone) NextTransition(i Instant) (Transition, bool) {
	if tz.kind != zoneNamed {
		return Transition{}, false
	}
	t := time.Unix(i.sec, int64(i.nsec)).In(tz.loc)
	for n := 0; n < maxTransitionScan; n++ {
		_, end := t.ZoneBounds()
		if end.IsZero() || end.Unix() > maxInstantSeconds {
			return Transition{}, false
		}
		if tr, ok := tz.transitionAt(end); ok {
			return tr, true
		}
		t = end
	}
	return Transition{}, false
}

// PreviousTransition returns the last offset change strictly before i.
func (tz *TimeZone) PreviousTransition(i Instant) (Transition, bool) {
	if tz.kind != zoneNamed {
		return Transition{}, false
	}
	limit := time.Unix(i.sec, int64(i.nsec))
	t := limit.In(tz.loc)
	for n := 0; n < maxTransitionScan; n++ {
		start, _ := t.ZoneBounds()
		if start.IsZero() || start.Unix() < -maxInstantSeconds {
			return Transition{}, false
		}
		if start.Before(limit) {
			if tr, ok := tz.transitionAt(start); ok {
				return tr, true
			}
		}
		t = start.Add(-time.Nanosecond)
	}
	return Transition{}, false
}

func (tz *TimeZone) transitionAt(at time.Time) (Transition, bool) {
	_, after := at.In(tz.loc).Zone()
	_, before := at.Add(-time.Nanosecond).In(tz.loc).Zone()
	if after == before {
		return Transition{}, false
	}
	return Transition{
		At:           Instant{sec: at.Unix(), nsec: int32(at.Nanosecond())},
		OffsetBefore: int64(before) * nsPerSecond,
		OffsetAfter:  int64(after) * nsPerSecond,
	}, true
}

// MaxTransitions caps the size of a transition list.
const MaxTransitions = 10_000

// Transitions lists the offset changes in [from, to), at most MaxTransitions.
func (tz *TimeZone) Transitions(from, to Instant) ([]Transition, error) {
	if to.Compare(from) < 0 {
		return nil, errors.InvalidArgument(errors.PhaseResolve, []string{"range"}, "end precedes start")
	}
	var out []Transition
	cur := Instant{sec: from.sec, nsec: from.nsec}
	// a transition exactly at from is included
	if prev, err := cur.addTD(timeDuration{sec: -1, nsec: nsPerSecond - 1}); err == nil {
		cur = prev
	}
	for {
		tr, ok := tz.NextTransition(cur)
		if !ok || tr.At.Compare(to) >= 0 {
			return out, nil
		}
		if len(out) == MaxTransitions {
			return nil, errors.RangeOverflow(errors.PhaseResolve, "more than %d transitions in range", MaxTransitions)
		}
		out = append(out, tr)
		cur = tr.At
	}
}
