// Package temporalcapi exposes a calendar-aware date-time engine across a
// flat, C-compatible binary interface.
//
// Callers on the other side of the boundary see only fixed-layout structs,
// opaque u32 handles, UTF-8 (ptr, len) text and closed numeric error codes.
// The Go side wraps the engine, validates everything that comes in and tags
// everything that goes out as by-value, owned or borrowed.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	temporalcapi/        Root package with the linear Memory abstraction
//	├── temporal/        Date-time engine: values, calendars, zones, parsing
//	├── capi/            Operation surface, flat layouts, status codes, text
//	├── resource/        Generation-stamped handle table with borrowed views
//	├── errors/          Structured error types mapped onto status codes
//	├── host/            wazero host module "temporal:capi" over guest memory
//	└── cmd/temporal/    CLI and interactive playground
//
// # Quick Start
//
// Call the surface directly from Go:
//
//	s, err := capi.NewSurface(capi.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	d, err := s.PlainDateParse("2024-02-29")
//	if err != nil {
//	    log.Fatal(capi.StatusOf(err)) // "parse_failure: ..." with Offset set
//	}
//	next, err := s.PlainDateAdd(d, capi.FlatDuration{Years: 1}, capi.OverflowConstrain)
//
// Or expose it to a WebAssembly guest that imports "temporal:capi":
//
//	r := wazero.NewRuntime(ctx)
//	m, _, err := host.Instantiate(ctx, r, host.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//	guest, err := r.Instantiate(ctx, guestWasm)
//
// C callers use include/temporal_capi.h, which declares the same exports.
//
// # Ownership
//
// By-value results are plain structs the caller copies. Owned handles
// (time zones, zoned date-times, text, transition lists) must be released
// exactly once; releasing twice or using a released handle is a caller
// contract violation. The handle table detects most such misuse through a
// generation stamp, but callers must not rely on it. Borrowed views are
// bound to their parent handle and report InvalidHandle once it is gone.
//
// # Thread Safety
//
// By-value types carry no shared state. A Surface serializes access to its
// handle table, but concurrent use of the same handle is a contract
// violation.
package temporalcapi
