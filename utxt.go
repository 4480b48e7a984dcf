package utxt

// Memory is guest linear memory as seen by the host functions. Read may
// return a view into the memory rather than a copy; callers must not keep
// it across guest calls.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of guest linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}
