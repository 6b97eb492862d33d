package layout

import (
	"fmt"
	"sync"

	"go.bytecodealliance.org/wit"
)

// Info is the size, alignment and field offsets of a type.
type Info struct {
	FieldOffs map[string]uint32
	Size      uint32
	Align     uint32
}

// Offset returns the offset of a named field. It panics on an unknown name,
// which is a programming error in the caller's record table.
func (i Info) Offset(field string) uint32 {
	off, ok := i.FieldOffs[field]
	if !ok {
		panic(fmt.Sprintf("layout: no field %q", field))
	}
	return off
}

// Calculator memoizes layouts per type definition.
type Calculator struct {
	cache map[*wit.TypeDef]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	c.mu.Lock()
	cached, ok := c.cache[t]
	c.mu.Unlock()
	if ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		info = c.calculateRecord(kind)
	case *wit.Enum:
		info = c.calculateEnum(kind)
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.mu.Lock()
	c.cache[t] = info
	c.mu.Unlock()
	return info
}

func (c *Calculator) calculateRecord(r *wit.Record) Info {
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}
	}

	fieldOffs := make(map[string]uint32)
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		fieldLayout := c.Calculate(field.Type)

		offset = AlignTo(offset, fieldLayout.Align)
		fieldOffs[field.Name] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		offset += fieldLayout.Size
	}

	totalSize := AlignTo(offset, maxAlign)

	return Info{
		Size:      totalSize,
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}
}

func (c *Calculator) calculateEnum(e *wit.Enum) Info {
	size := DiscriminantSize(len(e.Cases))
	return Info{Size: size, Align: size}
}

// AlignTo rounds offset up to a multiple of align.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// DiscriminantSize returns the byte width of a discriminant for n cases.
func DiscriminantSize(n int) uint32 {
	switch {
	case n <= 1<<8:
		return 1
	case n <= 1<<16:
		return 2
	default:
		return 4
	}
}

// Check reports the first field, at any depth, whose type is not fixed-size.
func Check(t wit.Type) error {
	return check(t, "")
}

func check(t wit.Type, path string) error {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool, wit.U16, wit.S16, wit.U32, wit.S32,
		wit.U64, wit.S64, wit.F32, wit.F64, wit.Char:
		return nil
	case *wit.TypeDef:
		switch kind := typ.Kind.(type) {
		case *wit.Record:
			for _, f := range kind.Fields {
				p := f.Name
				if path != "" {
					p = path + "." + f.Name
				}
				if err := check(f.Type, p); err != nil {
					return err
				}
			}
			return nil
		case *wit.Enum:
			return nil
		case wit.Type:
			return check(kind, path)
		}
	}
	return fmt.Errorf("field %q: %s is not a fixed-size type", path, TypeName(t))
}

// TypeName renders a type the way it is spelled in WIT.
func TypeName(t wit.Type) string {
	switch typ := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if typ.Name != nil {
			return *typ.Name
		}
		switch kind := typ.Kind.(type) {
		case *wit.List:
			return "list<" + TypeName(kind.Type) + ">"
		case *wit.Record:
			return "record"
		case *wit.Enum:
			return "enum"
		}
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", t)
}
