package host

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero/api"

	temporalcapi "github.com/wippyai/temporal-capi"
	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/errors"
)

const (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// call is one invocation: the caller's memory and its raw parameters.
type call struct {
	ctx   context.Context
	mem   temporalcapi.Memory
	s     *capi.Surface
	stack []uint64
}

func (c *call) u32(i int) uint32 { return api.DecodeU32(c.stack[i]) }
func (c *call) s32(i int) int32  { return api.DecodeI32(c.stack[i]) }
func (c *call) s64(i int) int64  { return int64(c.stack[i]) }

// binding is an export's parameter list (status_ptr excluded) and body.
type binding struct {
	params []api.ValueType
	fn     func(c *call) error
}

// arg decodes one logical argument spanning len(types) stack slots.
type arg[T any] struct {
	types []api.ValueType
	get   func(c *call, i int) (T, error)
}

// result delivers one logical result through len(types) stack slots.
type result[T any] struct {
	types []api.ValueType
	put   func(c *call, i int, v T) error
}

func concat(lists ...[]api.ValueType) []api.ValueType {
	var out []api.ValueType
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func fn0[R any](op func() (R, error), r result[R]) binding {
	return binding{
		params: concat(r.types),
		fn: func(c *call) error {
			out, err := op()
			if err != nil {
				return err
			}
			return r.put(c, 0, out)
		},
	}
}

func fn1[A, R any](a arg[A], op func(A) (R, error), r result[R]) binding {
	return binding{
		params: concat(a.types, r.types),
		fn: func(c *call) error {
			va, err := a.get(c, 0)
			if err != nil {
				return err
			}
			out, err := op(va)
			if err != nil {
				return err
			}
			return r.put(c, len(a.types), out)
		},
	}
}

func fn2[A, B, R any](a arg[A], b arg[B], op func(A, B) (R, error), r result[R]) binding {
	return binding{
		params: concat(a.types, b.types, r.types),
		fn: func(c *call) error {
			i := 0
			va, err := a.get(c, i)
			if err != nil {
				return err
			}
			i += len(a.types)
			vb, err := b.get(c, i)
			if err != nil {
				return err
			}
			i += len(b.types)
			out, err := op(va, vb)
			if err != nil {
				return err
			}
			return r.put(c, i, out)
		},
	}
}

func fn3[A, B, C, R any](a arg[A], b arg[B], cc arg[C], op func(A, B, C) (R, error), r result[R]) binding {
	return binding{
		params: concat(a.types, b.types, cc.types, r.types),
		fn: func(c *call) error {
			i := 0
			va, err := a.get(c, i)
			if err != nil {
				return err
			}
			i += len(a.types)
			vb, err := b.get(c, i)
			if err != nil {
				return err
			}
			i += len(b.types)
			vc, err := cc.get(c, i)
			if err != nil {
				return err
			}
			i += len(cc.types)
			out, err := op(va, vb, vc)
			if err != nil {
				return err
			}
			return r.put(c, i, out)
		},
	}
}

func fn4[A, B, C, D, R any](a arg[A], b arg[B], cc arg[C], d arg[D], op func(A, B, C, D) (R, error), r result[R]) binding {
	return binding{
		params: concat(a.types, b.types, cc.types, d.types, r.types),
		fn: func(c *call) error {
			i := 0
			va, err := a.get(c, i)
			if err != nil {
				return err
			}
			i += len(a.types)
			vb, err := b.get(c, i)
			if err != nil {
				return err
			}
			i += len(b.types)
			vc, err := cc.get(c, i)
			if err != nil {
				return err
			}
			i += len(cc.types)
			vd, err := d.get(c, i)
			if err != nil {
				return err
			}
			i += len(d.types)
			out, err := op(va, vb, vc, vd)
			if err != nil {
				return err
			}
			return r.put(c, i, out)
		},
	}
}

// do1 binds an operation without a result, such as a release.
func do1[A any](a arg[A], op func(A) error) binding {
	return binding{
		params: concat(a.types),
		fn: func(c *call) error {
			va, err := a.get(c, 0)
			if err != nil {
				return err
			}
			return op(va)
		},
	}
}

// Arguments.

func record[T any](read func(temporalcapi.Memory, uint32) (T, error)) arg[T] {
	return arg[T]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (T, error) {
			return read(c.mem, c.u32(i))
		},
	}
}

// optional reads a record, or yields nil for a null pointer.
func optional[T any](read func(temporalcapi.Memory, uint32) (T, error)) arg[*T] {
	return arg[*T]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (*T, error) {
			if c.u32(i) == 0 {
				return nil, nil
			}
			v, err := read(c.mem, c.u32(i))
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}

// enum reads a u8 wire enumeration passed as i32. Values that do not fit a
// byte are rejected here; the surface rejects unknown values that do.
func enum[T ~uint8](what string) arg[T] {
	return arg[T]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (T, error) {
			v := c.u32(i)
			if v > math.MaxUint8 {
				return 0, errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).
					Path(what).Value(v).Detail("enumeration value %d out of range", v).Build()
			}
			return T(v), nil
		},
	}
}

func small[T ~uint8 | ~uint16](what string, max uint32) arg[T] {
	return arg[T]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (T, error) {
			v := c.u32(i)
			if v > max {
				return 0, errors.InvalidField(errors.PhaseBoundary, []string{what}, v, "value out of range")
			}
			return T(v), nil
		},
	}
}

var (
	handleArg = arg[capi.Handle]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (capi.Handle, error) {
			return capi.Handle(c.u32(i)), nil
		},
	}
	u32Arg = arg[uint32]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (uint32, error) {
			return c.u32(i), nil
		},
	}
	s32Arg = arg[int32]{
		types: []api.ValueType{i32},
		get: func(c *call, i int) (int32, error) {
			return c.s32(i), nil
		},
	}
	s64Arg = arg[int64]{
		types: []api.ValueType{i64},
		get: func(c *call, i int) (int64, error) {
			return c.s64(i), nil
		},
	}
	// textArg is (ptr, len) UTF-8.
	textArg = arg[string]{
		types: []api.ValueType{i32, i32},
		get: func(c *call, i int) (string, error) {
			return capi.ReadText(c.mem, c.u32(i), c.u32(i+1))
		},
	}
)

// Results.

func recordOut[T any](write func(temporalcapi.Memory, uint32, T) error) result[T] {
	return result[T]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, v T) error {
			return write(c.mem, c.u32(i), v)
		},
	}
}

func enumOut[T ~uint8]() result[T] {
	return result[T]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, v T) error {
			return capi.WriteU32(c.mem, c.u32(i), uint32(v), "out")
		},
	}
}

var (
	// handleOut writes a new handle and releases it again when it cannot be
	// delivered, so a bad out pointer never leaks.
	handleOut = result[capi.Handle]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, h capi.Handle) error {
			if err := capi.WriteU32(c.mem, c.u32(i), uint32(h), "out"); err != nil {
				_ = c.s.Discard(h)
				return err
			}
			return nil
		},
	}
	u32Out = result[uint32]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, v uint32) error {
			return capi.WriteU32(c.mem, c.u32(i), v, "out")
		},
	}
	s32Out = result[int32]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, v int32) error {
			return capi.WriteU32(c.mem, c.u32(i), uint32(v), "out")
		},
	}
	s64Out = result[int64]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, v int64) error {
			return capi.WriteU64(c.mem, c.u32(i), uint64(v), "out")
		},
	}
	f64Out = result[float64]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, v float64) error {
			return capi.WriteU64(c.mem, c.u32(i), math.Float64bits(v), "out")
		},
	}
	// textOut is (buf_ptr, buf_cap, len_out_ptr) with capacity negotiation.
	textOut = result[string]{
		types: []api.ValueType{i32, i32, i32},
		put: func(c *call, i int, s string) error {
			return capi.PutText(c.mem, s, c.u32(i), c.u32(i+1), c.u32(i+2))
		},
	}
	// textHandleOut returns the text as an owned Text handle.
	textHandleOut = result[string]{
		types: []api.ValueType{i32},
		put: func(c *call, i int, s string) error {
			h, err := c.s.TextNew(s)
			if err != nil {
				return err
			}
			return handleOut.put(c, i, h)
		},
	}
)
