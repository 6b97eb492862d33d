package capi

import (
	"github.com/wippyai/temporal-capi/errors"
	"github.com/wippyai/temporal-capi/temporal"
)

// TimeZoneFromIdentifier resolves "UTC", a numeric offset such as "+05:30"
// or an IANA name into an owned TimeZone handle.
func (s *Surface) TimeZoneFromIdentifier(id string) (h Handle, err error) {
	defer s.guard("time_zone_from_identifier", &err)
	if err := ValidateText(id); err != nil {
		return 0, err
	}
	tz, err := temporal.TimeZoneFromIdentifier(id)
	if err != nil {
		return 0, err
	}
	return s.zones.Insert(tz)
}

// TimeZoneFromOffset creates a fixed-offset zone. The offset must be a
// whole number of minutes within one day.
func (s *Surface) TimeZoneFromOffset(offsetNs int64) (h Handle, err error) {
	defer s.guard("time_zone_from_offset", &err)
	tz, err := temporal.TimeZoneFromOffset(offsetNs)
	if err != nil {
		return 0, err
	}
	return s.zones.Insert(tz)
}

// TimeZoneIdentifier returns a view of the zone's identifier, valid while
// the zone handle is live.
func (s *Surface) TimeZoneIdentifier(tz Handle) (view Handle, err error) {
	defer s.guard("time_zone_identifier", &err)
	z, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	return s.views.InsertView(tz, z.Identifier())
}

// TimeZoneOffsetAt returns the UTC offset in nanoseconds in effect at an instant.
func (s *Surface) TimeZoneOffsetAt(tz Handle, at FlatInstant) (ns int64, err error) {
	defer s.guard("time_zone_offset_at", &err)
	i, err := FromFlatInstant(at)
	if err != nil {
		return 0, err
	}
	z, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	return z.OffsetNanosecondsFor(i), nil
}

// TimeZoneNextTransition returns the first offset change strictly after
// at; found is false when there is none.
func (s *Surface) TimeZoneNextTransition(tz Handle, at FlatInstant) (t FlatTransition, found bool, err error) {
	defer s.guard("time_zone_next_transition", &err)
	return s.transition(tz, at, (*temporal.TimeZone).NextTransition)
}

// TimeZonePreviousTransition returns the last offset change strictly
// before at; found is false when there is none.
func (s *Surface) TimeZonePreviousTransition(tz Handle, at FlatInstant) (t FlatTransition, found bool, err error) {
	defer s.guard("time_zone_previous_transition", &err)
	return s.transition(tz, at, (*temporal.TimeZone).PreviousTransition)
}

func (s *Surface) transition(tz Handle, at FlatInstant,
	lookup func(*temporal.TimeZone, temporal.Instant) (temporal.Transition, bool)) (FlatTransition, bool, error) {
	i, err := FromFlatInstant(at)
	if err != nil {
		return FlatTransition{}, false, err
	}
	z, done, err := s.zone(tz)
	if err != nil {
		return FlatTransition{}, false, err
	}
	defer done()
	tr, ok := lookup(z, i)
	if !ok {
		return FlatTransition{}, false, nil
	}
	return ToFlatTransition(tr), true, nil
}

// TimeZoneTransitions collects the offset changes in [from, to) into an
// owned TransitionList, read back by index.
func (s *Surface) TimeZoneTransitions(tz Handle, from, to FlatInstant) (list Handle, err error) {
	defer s.guard("time_zone_transitions", &err)
	start, err := FromFlatInstant(from)
	if err != nil {
		return 0, err
	}
	end, err := FromFlatInstant(to)
	if err != nil {
		return 0, err
	}
	z, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	ts, err := z.Transitions(start, end)
	if err != nil {
		return 0, err
	}
	return s.lists.Insert(ts)
}

// TransitionListLen returns the number of transitions in a list.
func (s *Surface) TransitionListLen(list Handle) (n uint32, err error) {
	defer s.guard("transition_list_len", &err)
	ts, err := s.lists.Get(list)
	if err != nil {
		return 0, err
	}
	return uint32(len(ts)), nil
}

// TransitionListAt returns transition i of a list.
func (s *Surface) TransitionListAt(list Handle, i uint32) (t FlatTransition, err error) {
	defer s.guard("transition_list_at", &err)
	ts, err := s.lists.Get(list)
	if err != nil {
		return FlatTransition{}, err
	}
	if uint64(i) >= uint64(len(ts)) {
		return FlatTransition{}, errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).
			Path("index").Value(i).Detail("index %d out of range [0, %d)", i, len(ts)).Build()
	}
	return ToFlatTransition(ts[i]), nil
}

// TransitionListRelease releases a list.
func (s *Surface) TransitionListRelease(list Handle) (err error) {
	defer s.guard("transition_list_release", &err)
	return s.release(list, TypeTransitionList)
}

// TimeZoneRelease releases a zone handle and every view taken of it.
// Zoned date-times created from it stay valid.
func (s *Surface) TimeZoneRelease(tz Handle) (err error) {
	defer s.guard("time_zone_release", &err)
	return s.release(tz, TypeTimeZone)
}
