package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseConstruct,
				Kind:   KindInvalidField,
				Path:   []string{"plain-date", "month"},
				Value:  13,
				Detail: "month must be in 1..12",
			},
			contains: []string{"[construct]", "invalid_field", "plain-date.month", "month must be in 1..12"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseArithmetic,
				Kind:  KindRangeOverflow,
			},
			contains: []string{"[arithmetic]", "range_overflow"},
		},
		{
			name:     "parse offset",
			err:      ParseFailure(7, "expected %q", '-'),
			contains: []string{"[parse]", "parse_failure", "byte 7", "expected '-'"},
		},
		{
			name:     "buffer requirement",
			err:      BufferTooSmall(PhaseFormat, 25, 24),
			contains: []string{"buffer_too_small", "need 25 bytes", "holds 24"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindInvalidIdentifier,
				Detail: "unknown time zone",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[resolve]", "invalid_calendar_or_time_zone", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseResolve,
		Kind:  KindInvalidIdentifier,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConstruct,
		Kind:  KindInvalidField,
		Path:  []string{"day"},
	}

	if !errors.Is(err, &Error{Phase: PhaseConstruct, Kind: KindInvalidField}) {
		t.Error("should match same phase and kind")
	}
	if !errors.Is(err, &Error{Kind: KindInvalidField}) {
		t.Error("kind-only target should match")
	}
	if errors.Is(err, &Error{Phase: PhaseParse, Kind: KindInvalidField}) {
		t.Error("should not match different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseConstruct, Kind: KindRangeOverflow}) {
		t.Error("should not match different kind")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Error("should not match non-structured error")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"direct", RangeOverflow(PhaseArithmetic, "too far"), KindRangeOverflow},
		{"wrapped", fmt.Errorf("outer: %w", AmbiguousTime("gap")), KindAmbiguousTime},
		{"foreign", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", ParseFailure(3, "bad"))
	e, ok := As(wrapped)
	if !ok {
		t.Fatal("As should find structured error")
	}
	if e.Offset != 3 {
		t.Errorf("Offset = %d, want 3", e.Offset)
	}
	if _, ok := As(errors.New("x")); ok {
		t.Error("As should fail for plain error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("cause")
	err := New(PhaseParse, KindParseFailure).
		Path("instant").
		Value("2024-13").
		Offset(5).
		Detail("month %d out of range", 13).
		Cause(cause).
		Build()

	if err.Phase != PhaseParse || err.Kind != KindParseFailure {
		t.Errorf("wrong phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if len(err.Path) != 1 || err.Path[0] != "instant" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Offset != 5 {
		t.Errorf("Offset = %d, want 5", err.Offset)
	}
	if err.Detail != "month 13 out of range" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"InvalidField", InvalidField(PhaseConstruct, []string{"hour"}, 24, "hour"), PhaseConstruct, KindInvalidField},
		{"RangeOverflow", RangeOverflow(PhaseArithmetic, "x"), PhaseArithmetic, KindRangeOverflow},
		{"UnknownCalendar", UnknownCalendar("hebrew"), PhaseResolve, KindInvalidIdentifier},
		{"UnknownTimeZone", UnknownTimeZone("Mars/Olympus", nil), PhaseResolve, KindInvalidIdentifier},
		{"ParseFailure", ParseFailure(0, "empty"), PhaseParse, KindParseFailure},
		{"AmbiguousTime", AmbiguousTime("gap"), PhaseArithmetic, KindAmbiguousTime},
		{"InvalidRounding", InvalidRounding("increment"), PhaseRound, KindInvalidRounding},
		{"BufferTooSmall", BufferTooSmall(PhaseFormat, 10, 2), PhaseFormat, KindBufferTooSmall},
		{"InvalidHandle", InvalidHandle(4, "released"), PhaseBoundary, KindInvalidHandle},
		{"InvalidArgument", InvalidArgument(PhaseRound, nil, "unit"), PhaseRound, KindInvalidArgument},
		{"Internal", Internal(errors.New("panic")), PhaseBoundary, KindInternal},
		{"Registration", Registration("temporal:capi", "instant_now", errors.New("dup")), PhaseHost, KindRegistration},
		{"Wrap", Wrap(PhaseMarshal, KindInvalidField, errors.New("e"), "d"), PhaseMarshal, KindInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
