package temporalcapi

import (
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

func TestSliceMemoryRoundTrip(t *testing.T) {
	m := NewSliceMemory(32)

	if err := m.WriteU8(0, 0xab); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteU16(2, 0xbeef); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteU32(4, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteU64(8, 0x0102030405060708); err != nil {
		t.Fatal(err)
	}

	if v, _ := m.ReadU8(0); v != 0xab {
		t.Errorf("u8: got %#x", v)
	}
	if v, _ := m.ReadU16(2); v != 0xbeef {
		t.Errorf("u16: got %#x", v)
	}
	if v, _ := m.ReadU32(4); v != 0xdeadbeef {
		t.Errorf("u32: got %#x", v)
	}
	if v, _ := m.ReadU64(8); v != 0x0102030405060708 {
		t.Errorf("u64: got %#x", v)
	}
	// little-endian byte order
	if m.Bytes()[8] != 0x08 {
		t.Errorf("byte order: got %#x at offset 8", m.Bytes()[8])
	}
}

func TestSliceMemoryBounds(t *testing.T) {
	m := NewSliceMemory(8)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"read past end", func() error { _, err := m.Read(4, 5); return err }},
		{"u32 straddles end", func() error { _, err := m.ReadU32(6); return err }},
		{"u64 write past end", func() error { return m.WriteU64(1, 0) }},
		{"offset overflow", func() error { _, err := m.Read(0xffffffff, 2); return err }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn()
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.KindOf(err) != errors.KindInvalidArgument {
				t.Errorf("kind: got %s", errors.KindOf(err))
			}
		})
	}

	if err := m.WriteU64(0, 1); err != nil {
		t.Errorf("exact fit: %v", err)
	}
}

func TestSliceMemoryReadCopies(t *testing.T) {
	m := NewSliceMemory(4)
	_ = m.Write(0, []byte("abcd"))
	b, _ := m.Read(0, 4)
	b[0] = 'z'
	if m.Bytes()[0] != 'a' {
		t.Error("Read must return a copy")
	}
}
