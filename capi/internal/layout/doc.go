// Package layout computes the linear-memory layout of the flat boundary
// records from their WIT descriptions.
//
// The rules are the Canonical ABI's for the subset the boundary allows:
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records: fields laid out sequentially with padding for alignment
//   - Enums: the smallest unsigned discriminant that holds every case
//
// Strings, lists and other variable-length types are rejected by Check:
// a flat record never embeds a pointer.
//
// # Usage
//
//	c := layout.NewCalculator()
//	info := c.Calculate(recordTypeDef)
//	// info.Size, info.Align, info.FieldOffs available
//
// This package is internal to capi.
package layout
