package hostmod

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/utxt"
	"github.com/wippyai/utxt/errors"
)

// WrapMemory adapts a wazero api.Memory to utxt.Memory.
func WrapMemory(mem api.Memory) utxt.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the utxt.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

var (
	_ utxt.Memory      = (*Wrapper)(nil)
	_ utxt.MemorySizer = (*Wrapper)(nil)
)

// Read returns a view of length bytes at offset. The view aliases guest
// memory.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseHost, []string{"memory", "read"}, offset, length)
	}
	return data, nil
}

// Write copies data into memory at offset.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseHost, []string{"memory", "write"}, offset, uint32(len(data)))
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}
