package capi

import (
	"strconv"

	"github.com/wippyai/temporal-capi/errors"
	"github.com/wippyai/temporal-capi/resource"
	"github.com/wippyai/temporal-capi/temporal"
)

// Handle is an opaque u32 token for an owned value or a borrowed view.
type Handle = resource.Handle

// Handle types. Owned: TimeZone, ZonedDateTime, Text, TransitionList.
// Borrowed: TextView, which is bound to the handle it was taken from.
const (
	TypeTimeZone resource.TypeID = iota + 1
	TypeZonedDateTime
	TypeText
	TypeTextView
	TypeTransitionList
)

var typeNames = map[resource.TypeID]string{
	TypeTimeZone:       "time_zone",
	TypeZonedDateTime:  "zoned_date_time",
	TypeText:           "text",
	TypeTextView:       "text_view",
	TypeTransitionList: "transition_list",
}

// TypeNames returns the metric label of every handle type.
func TypeNames() map[resource.TypeID]string {
	out := make(map[resource.TypeID]string, len(typeNames))
	for k, v := range typeNames {
		out[k] = v
	}
	return out
}

// TypeName returns the label of one handle type.
func TypeName(id resource.TypeID) string {
	if n, ok := typeNames[id]; ok {
		return n
	}
	return strconv.FormatUint(uint64(id), 10)
}

// zone borrows a time zone handle for the duration of a call.
func (s *Surface) zone(h Handle) (*temporal.TimeZone, func(), error) {
	return s.zones.Borrow(h)
}

// optionalZone treats handle 0 as "no zone".
func (s *Surface) optionalZone(h Handle) (*temporal.TimeZone, func(), error) {
	if h == 0 {
		return nil, func() {}, nil
	}
	return s.zones.Borrow(h)
}

func (s *Surface) zdt(h Handle) (temporal.ZonedDateTime, func(), error) {
	return s.zoned.Borrow(h)
}

func (s *Surface) newZoned(z temporal.ZonedDateTime) (Handle, error) {
	return s.zoned.Insert(z)
}

// release removes an owned handle of the given type.
func (s *Surface) release(h Handle, id resource.TypeID) error {
	if _, err := s.table.Lookup(h, id); err != nil {
		return err
	}
	if p, _ := s.table.Parent(h); p != 0 {
		return errors.InvalidHandle(uint32(h), "borrowed views are not released through the owner's release")
	}
	_, err := s.table.Remove(h)
	return err
}

// Discard releases a handle of any type: an owned value together with its
// views, or a single view. The host uses it to undo a result it could not
// deliver to the caller.
func (s *Surface) Discard(h Handle) error {
	_, err := s.table.Remove(h)
	return err
}
