// Package errors provides structured error types for the temporal boundary.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Kind is a closed set; the boundary maps every Kind onto exactly
// one stable status code, so callers can branch on it without parsing text.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConstruct, errors.KindInvalidField).
//		Path("plain-date", "month").
//		Value(13).
//		Detail("month must be in 1..12").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidField(errors.PhaseConstruct, []string{"month"}, 13, "month must be in 1..12")
//	err := errors.ParseFailure(7, "expected '-' after month")
//	err := errors.BufferTooSmall(errors.PhaseFormat, 25, 24)
//
// The Detail text is diagnostic only; its wording is not a stable contract.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
