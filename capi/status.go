package capi

import (
	"math"

	"github.com/wippyai/temporal-capi/errors"
)

// Code is the closed set of results every entry point returns. The numeric
// values are part of the binary interface and never change.
type Code uint32

const (
	OK                             Code = 0
	InvalidField                   Code = 1
	RangeOverflow                  Code = 2
	InvalidCalendarOrTimeZone      Code = 3
	ParseFailure                   Code = 4
	AmbiguousOrImpossibleLocalTime Code = 5
	InvalidRoundingConfiguration   Code = 6
	BufferTooSmall                 Code = 7
	InvalidHandle                  Code = 8
	InvalidArgument                Code = 9
	Internal                       Code = 10
)

var codeNames = [...]string{
	OK:                             "ok",
	InvalidField:                   "invalid_field",
	RangeOverflow:                  "range_overflow",
	InvalidCalendarOrTimeZone:      "invalid_calendar_or_time_zone",
	ParseFailure:                   "parse_failure",
	AmbiguousOrImpossibleLocalTime: "ambiguous_or_impossible_local_time",
	InvalidRoundingConfiguration:   "invalid_rounding_configuration",
	BufferTooSmall:                 "buffer_too_small",
	InvalidHandle:                  "invalid_handle",
	InvalidArgument:                "invalid_argument",
	Internal:                       "internal",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Codes lists every code in numeric order.
func Codes() []Code {
	out := make([]Code, len(codeNames))
	for i := range out {
		out[i] = Code(i)
	}
	return out
}

var kindCodes = map[errors.Kind]Code{
	errors.KindInvalidField:      InvalidField,
	errors.KindRangeOverflow:     RangeOverflow,
	errors.KindInvalidIdentifier: InvalidCalendarOrTimeZone,
	errors.KindParseFailure:      ParseFailure,
	errors.KindAmbiguousTime:     AmbiguousOrImpossibleLocalTime,
	errors.KindInvalidRounding:   InvalidRoundingConfiguration,
	errors.KindBufferTooSmall:    BufferTooSmall,
	errors.KindInvalidHandle:     InvalidHandle,
	errors.KindInvalidArgument:   InvalidArgument,
	errors.KindInternal:          Internal,
}

// CodeOf maps an error to its code. Errors that did not come from this
// module are Internal.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := kindCodes[errors.KindOf(err)]; ok {
		return c
	}
	return Internal
}

// NoOffset marks a Status without a parse position.
const NoOffset int32 = -1

// Status is the diagnostic payload of a result. Message is for logs only;
// its wording is not part of the interface.
type Status struct {
	Message  string
	Code     Code
	Offset   int32
	Required uint32
}

// StatusOf converts an error into a Status.
func StatusOf(err error) Status {
	if err == nil {
		return Status{Code: OK, Offset: NoOffset}
	}
	st := Status{Code: CodeOf(err), Offset: NoOffset, Message: err.Error()}
	if e, ok := errors.As(err); ok {
		if e.Kind == errors.KindParseFailure && e.Offset >= 0 && e.Offset <= math.MaxInt32 {
			st.Offset = int32(e.Offset)
		}
		if e.Kind == errors.KindBufferTooSmall && e.Required >= 0 && e.Required <= math.MaxUint32 {
			st.Required = uint32(e.Required)
		}
	}
	return st
}

func (s Status) String() string {
	if s.Message == "" {
		return s.Code.String()
	}
	return s.Code.String() + ": " + s.Message
}
