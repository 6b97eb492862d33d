package layout

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uint32
		align uint32
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S8{}, "s8", 1, 1},
		{wit.U16{}, "u16", 2, 2},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.S32{}, "s32", 4, 4},
		{wit.U64{}, "u64", 8, 8},
		{wit.S64{}, "s64", 8, 8},
		{wit.F32{}, "f32", 4, 4},
		{wit.F64{}, "f64", 8, 8},
		{wit.Char{}, "char", 4, 4},
		{wit.String{}, "string", 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
			if got := TypeName(tc.typ); got != tc.name {
				t.Errorf("TypeName: got %q, want %q", got, tc.name)
			}
		})
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{}}}
		info := c.Calculate(typedef)
		if info.Size != 0 {
			t.Errorf("size: got %d, want 0", info.Size)
		}
	})

	t.Run("instant", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "seconds", Type: wit.S64{}},
			{Name: "nanoseconds", Type: wit.S32{}},
		}}}
		info := c.Calculate(typedef)
		if info.Size != 16 || info.Align != 8 {
			t.Errorf("got size %d align %d, want 16/8", info.Size, info.Align)
		}
		if info.Offset("nanoseconds") != 8 {
			t.Errorf("nanoseconds offset: got %d", info.Offset("nanoseconds"))
		}
	})

	t.Run("date_with_tail_padding", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "year", Type: wit.S32{}},
			{Name: "month", Type: wit.U8{}},
			{Name: "day", Type: wit.U8{}},
			{Name: "calendar", Type: wit.U8{}},
		}}}
		info := c.Calculate(typedef)
		if info.Size != 8 {
			t.Errorf("size: got %d, want 8", info.Size)
		}
		want := map[string]uint32{"year": 0, "month": 4, "day": 5, "calendar": 6}
		for name, off := range want {
			if info.Offset(name) != off {
				t.Errorf("%s offset: got %d, want %d", name, info.Offset(name), off)
			}
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "a", Type: wit.U8{}},
			{Name: "b", Type: wit.U32{}},
			{Name: "c", Type: wit.U8{}},
		}}}
		info := c.Calculate(typedef)

		if info.FieldOffs["b"] != 4 || info.FieldOffs["c"] != 8 {
			t.Errorf("offsets: %v", info.FieldOffs)
		}
		if info.Size != 12 || info.Align != 4 {
			t.Errorf("got size %d align %d, want 12/4", info.Size, info.Align)
		}
	})

	t.Run("nested", func(t *testing.T) {
		inner := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "hour", Type: wit.U8{}},
			{Name: "nanosecond", Type: wit.U16{}},
		}}}
		outer := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "flag", Type: wit.U8{}},
			{Name: "time", Type: inner},
		}}}
		info := c.Calculate(outer)
		if info.Offset("time") != 2 || info.Size != 6 || info.Align != 2 {
			t.Errorf("got %+v", info)
		}
	})
}

func TestCalculateEnum(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		name      string
		numCases  int
		wantSize  uint32
		wantAlign uint32
	}{
		{"1_case", 1, 1, 1},
		{"256_cases", 256, 1, 1},
		{"257_cases", 257, 2, 2},
		{"65537_cases", 65537, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cases := make([]wit.EnumCase, tc.numCases)
			typedef := &wit.TypeDef{Kind: &wit.Enum{Cases: cases}}
			info := c.Calculate(typedef)
			if info.Size != tc.wantSize || info.Align != tc.wantAlign {
				t.Errorf("got %d/%d, want %d/%d", info.Size, info.Align, tc.wantSize, tc.wantAlign)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	flat := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "code", Type: wit.U32{}},
		{Name: "mode", Type: &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "a"}}}}},
	}}}
	if err := Check(flat); err != nil {
		t.Errorf("flat record rejected: %v", err)
	}

	withString := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "inner", Type: &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "id", Type: wit.String{}},
		}}}},
	}}}
	err := Check(withString)
	if err == nil {
		t.Fatal("string field accepted")
	}
	if got := err.Error(); got != `field "inner.id": string is not a fixed-size type` {
		t.Errorf("message: %s", got)
	}

	list := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "xs", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
	}}}
	if Check(list) == nil {
		t.Error("list field accepted")
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct{ off, align, want uint32 }{
		{0, 4, 0}, {1, 4, 4}, {7, 8, 8}, {9, 1, 9}, {5, 0, 5},
	}
	for _, tc := range tests {
		if got := AlignTo(tc.off, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.off, tc.align, got, tc.want)
		}
	}
}
