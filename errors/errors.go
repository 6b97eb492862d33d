package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct  Phase = "construct"  // value construction from fields
	PhaseArithmetic Phase = "arithmetic" // add, subtract, difference
	PhaseRound      Phase = "round"      // rounding and option validation
	PhaseParse      Phase = "parse"      // text to value
	PhaseFormat     Phase = "format"     // value to text
	PhaseResolve    Phase = "resolve"    // calendar and time zone lookup
	PhaseMarshal    Phase = "marshal"    // flat layout to engine value
	PhaseBoundary   Phase = "boundary"   // handle and buffer protocol
	PhaseHost       Phase = "host"       // host module registration
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidField      Kind = "invalid_field"
	KindRangeOverflow     Kind = "range_overflow"
	KindInvalidIdentifier Kind = "invalid_calendar_or_time_zone"
	KindParseFailure      Kind = "parse_failure"
	KindAmbiguousTime     Kind = "ambiguous_or_impossible_local_time"
	KindInvalidRounding   Kind = "invalid_rounding_configuration"
	KindBufferTooSmall    Kind = "buffer_too_small"
	KindInvalidHandle     Kind = "invalid_handle"
	KindInvalidArgument   Kind = "invalid_argument"
	KindInternal          Kind = "internal"
	KindRegistration      Kind = "registration"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Path     []string
	Offset   int // byte offset of a parse failure
	Required int // capacity needed for a buffer_too_small failure
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	switch e.Kind {
	case KindParseFailure:
		fmt.Fprintf(&b, " (byte %d)", e.Offset)
	case KindBufferTooSmall:
		fmt.Fprintf(&b, " (need %d bytes)", e.Required)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
// Errors from outside this package report KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As is a shorthand for errors.As with an *Error target.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Offset sets the byte offset of a parse failure
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidField creates an error for a structural field outside its domain
func InvalidField(phase Phase, path []string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidField,
		Path:   path,
		Value:  value,
		Detail: detail,
	}
}

// RangeOverflow creates an error for a result outside the representable range
func RangeOverflow(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindRangeOverflow,
		Detail: detail,
	}
}

// UnknownCalendar creates an error for an unsupported calendar identifier
func UnknownCalendar(id string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindInvalidIdentifier,
		Value:  id,
		Detail: fmt.Sprintf("unknown calendar %q", id),
	}
}

// UnknownTimeZone creates an error for an unresolvable time zone identifier
func UnknownTimeZone(id string, cause error) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindInvalidIdentifier,
		Value:  id,
		Detail: fmt.Sprintf("unknown time zone %q", id),
		Cause:  cause,
	}
}

// ParseFailure creates a parse error positioned at a byte offset
func ParseFailure(offset int, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindParseFailure,
		Offset: offset,
		Detail: detail,
	}
}

// AmbiguousTime creates an error for a wall-clock value in a gap or overlap
func AmbiguousTime(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseArithmetic,
		Kind:   KindAmbiguousTime,
		Detail: detail,
	}
}

// InvalidRounding creates an error for an inconsistent unit/increment/mode
func InvalidRounding(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseRound,
		Kind:   KindInvalidRounding,
		Detail: detail,
	}
}

// BufferTooSmall creates a capacity negotiation error
func BufferTooSmall(phase Phase, required, capacity int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindBufferTooSmall,
		Required: required,
		Value:    capacity,
		Detail:   fmt.Sprintf("buffer holds %d bytes, %d required", capacity, required),
	}
}

// InvalidHandle creates an error for a handle that is zero, released or of the wrong type
func InvalidHandle(handle uint32, detail string) *Error {
	return &Error{
		Phase:  PhaseBoundary,
		Kind:   KindInvalidHandle,
		Value:  handle,
		Detail: detail,
	}
}

// InvalidArgument creates an error for an argument combination the operation rejects
func InvalidArgument(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Path:   path,
		Detail: detail,
	}
}

// Internal wraps an unexpected fault recovered at the boundary
func Internal(cause error) *Error {
	return &Error{
		Phase:  PhaseBoundary,
		Kind:   KindInternal,
		Detail: "internal fault",
		Cause:  cause,
	}
}

// Registration creates a host registration error
func Registration(namespace, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
