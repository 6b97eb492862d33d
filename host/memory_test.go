package host

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/temporal-capi/errors"
)

// memoryWASM is a minimal module with one page of memory exported as "memory".
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory"
	0x02, 0x00, // kind: memory, index 0
}

func newGuest(t *testing.T, ctx context.Context, rt wazero.Runtime) api.Module {
	t.Helper()
	compiled, err := rt.CompileModule(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return mod
}

func TestWrapMemory_Nil(t *testing.T) {
	if mem := WrapMemory(nil); mem != nil {
		t.Error("expected nil for nil memory")
	}
}

func TestWrapper_ReadWrite(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mem := WrapMemory(newGuest(t, ctx, rt).ExportedMemory("memory"))
	if mem == nil {
		t.Fatal("expected non-nil wrapped memory")
	}

	if err := mem.Write(16, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := mem.Read(16, 4)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got[0] != 1 || got[3] != 4 {
		t.Errorf("Read = %v", got)
	}
	got[0] = 9
	if again, _ := mem.Read(16, 1); again[0] != 1 {
		t.Error("Read must return a copy")
	}

	if err := mem.WriteU16(32, 0xBEEF); err != nil {
		t.Fatal(err)
	}
	if v, err := mem.ReadU16(32); err != nil || v != 0xBEEF {
		t.Errorf("ReadU16 = %x, %v", v, err)
	}
	if err := mem.WriteU32(36, 0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
	if v, err := mem.ReadU32(36); err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadU32 = %x, %v", v, err)
	}
	if err := mem.WriteU64(40, 1<<40); err != nil {
		t.Fatal(err)
	}
	if v, err := mem.ReadU64(40); err != nil || v != 1<<40 {
		t.Errorf("ReadU64 = %d, %v", v, err)
	}
	if err := mem.WriteU8(48, 7); err != nil {
		t.Fatal(err)
	}
	if v, err := mem.ReadU8(48); err != nil || v != 7 {
		t.Errorf("ReadU8 = %d, %v", v, err)
	}
}

func TestWrapper_OutOfBounds(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	w := &Wrapper{Mem: newGuest(t, ctx, rt).ExportedMemory("memory")}
	if w.Size() != 65536 {
		t.Fatalf("Size = %d", w.Size())
	}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"read", func() error { _, err := w.Read(65530, 8); return err }},
		{"write", func() error { return w.Write(65535, []byte{1, 2}) }},
		{"u8", func() error { _, err := w.ReadU8(65536); return err }},
		{"u16", func() error { return w.WriteU16(65535, 1) }},
		{"u32", func() error { _, err := w.ReadU32(65534); return err }},
		{"u64", func() error { return w.WriteU64(65532, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if errors.KindOf(err) != errors.KindInvalidArgument {
				t.Errorf("got %v, want invalid argument", err)
			}
		})
	}
}
