package host

import (
	"github.com/tetratelabs/wazero/api"

	temporalcapi "github.com/wippyai/temporal-capi"
	"github.com/wippyai/temporal-capi/errors"
)

// WrapMemory adapts a guest's linear memory to temporalcapi.Memory.
func WrapMemory(mem api.Memory) temporalcapi.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the temporalcapi.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

func outOfBounds(offset, length uint32) error {
	return errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).
		Value(offset).
		Detail("guest memory access out of bounds: offset=%d, length=%d", offset, length).
		Build()
}

// Size returns the current memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// Read copies bytes out of guest memory.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, outOfBounds(offset, length)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write writes bytes to guest memory.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return outOfBounds(offset, uint32(len(data)))
	}
	return nil
}

func (m *Wrapper) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.Mem.ReadByte(offset)
	if !ok {
		return 0, outOfBounds(offset, 1)
	}
	return v, nil
}

func (m *Wrapper) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.Mem.ReadUint16Le(offset)
	if !ok {
		return 0, outOfBounds(offset, 2)
	}
	return v, nil
}

func (m *Wrapper) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.Mem.ReadUint32Le(offset)
	if !ok {
		return 0, outOfBounds(offset, 4)
	}
	return v, nil
}

func (m *Wrapper) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.Mem.ReadUint64Le(offset)
	if !ok {
		return 0, outOfBounds(offset, 8)
	}
	return v, nil
}

func (m *Wrapper) WriteU8(offset uint32, value uint8) error {
	if !m.Mem.WriteByte(offset, value) {
		return outOfBounds(offset, 1)
	}
	return nil
}

func (m *Wrapper) WriteU16(offset uint32, value uint16) error {
	if !m.Mem.WriteUint16Le(offset, value) {
		return outOfBounds(offset, 2)
	}
	return nil
}

func (m *Wrapper) WriteU32(offset uint32, value uint32) error {
	if !m.Mem.WriteUint32Le(offset, value) {
		return outOfBounds(offset, 4)
	}
	return nil
}

func (m *Wrapper) WriteU64(offset uint32, value uint64) error {
	if !m.Mem.WriteUint64Le(offset, value) {
		return outOfBounds(offset, 8)
	}
	return nil
}
