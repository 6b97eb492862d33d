package resource

import (
	"fmt"

	"github.com/wippyai/temporal-capi/errors"
)

// Typed provides type-safe access to the entries of one TypeID.
type Typed[T any] struct {
	table *Table
	id    TypeID
}

// NewTyped binds a TypeID to its Go value type.
func NewTyped[T any](table *Table, id TypeID) Typed[T] {
	return Typed[T]{table: table, id: id}
}

// ID returns the bound TypeID.
func (tt Typed[T]) ID() TypeID {
	return tt.id
}

// Insert adds an owned value and returns its handle.
func (tt Typed[T]) Insert(value T) (Handle, error) {
	return tt.table.Insert(tt.id, value)
}

// InsertView adds a view of parent.
func (tt Typed[T]) InsertView(parent Handle, value T) (Handle, error) {
	return tt.table.InsertView(parent, tt.id, value)
}

// Get retrieves a value by handle.
func (tt Typed[T]) Get(h Handle) (T, error) {
	v, err := tt.table.Lookup(h, tt.id)
	if err != nil {
		var zero T
		return zero, err
	}
	return tt.cast(h, v)
}

// Borrow pins a handle and returns its value; call the returned function to
// unpin it.
func (tt Typed[T]) Borrow(h Handle) (T, func(), error) {
	v, err := tt.table.Borrow(h, tt.id)
	if err != nil {
		var zero T
		return zero, func() {}, err
	}
	out, err := tt.cast(h, v)
	if err != nil {
		tt.table.ReturnBorrow(h)
		return out, func() {}, err
	}
	return out, func() { tt.table.ReturnBorrow(h) }, nil
}

// Remove releases a handle and returns its value.
func (tt Typed[T]) Remove(h Handle) (T, error) {
	if _, err := tt.table.Lookup(h, tt.id); err != nil {
		var zero T
		return zero, err
	}
	v, err := tt.table.Remove(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return tt.cast(h, v)
}

// Len returns the number of live entries of this type.
func (tt Typed[T]) Len() int {
	n := 0
	tt.Each(func(Handle, T) bool {
		n++
		return true
	})
	return n
}

// Each iterates over live entries of this type.
func (tt Typed[T]) Each(fn func(Handle, T) bool) {
	tt.table.Each(func(h Handle, id TypeID, v any) bool {
		if id != tt.id {
			return true
		}
		typed, ok := v.(T)
		if !ok {
			return true
		}
		return fn(h, typed)
	})
}

func (tt Typed[T]) cast(h Handle, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, errors.Internal(fmt.Errorf("handle %#x: stored %T under type %d", uint32(h), v, tt.id))
	}
	return typed, nil
}
