// Package host serves the operation surface to WebAssembly guests as the
// wazero host module "temporal:capi".
//
// Every export uses core value types only. Pointers are i32 offsets into
// the calling module's exported memory, handles are u32, 64-bit scalars are
// i64. Each export returns an i32 status code and takes a trailing
// status_ptr; when non-zero a FlatStatus record is written there.
//
//	plain_date_parse(text_ptr, text_len, out_ptr, status_ptr) -> code
//	plain_date_format(in_ptr, opts_ptr, buf_ptr, buf_cap, len_out_ptr, status_ptr) -> code
//	plain_date_format_text(in_ptr, opts_ptr, out_ptr, status_ptr) -> code
//
// Formatting and identifier exports come in two forms: one writes into a
// caller buffer and reports BufferTooSmall with the exact required size in
// the status record, the _text form returns an owned Text handle.
//
// Scalar results are written to out_ptr as 4 bytes (codes, handles,
// calendars, signs, comparisons, counts) or 8 bytes (i64 values and f64
// bit patterns).
package host
