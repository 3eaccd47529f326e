package engine

// MemRef is a single memory reference drawn from a task's access stream.
// VirtualPage and Offset are derived from a virtual address `a` as
// VirtualPage = a / PageSize, Offset = a mod PageSize. PhysicalFrame is
// filled in by the MMU once the reference has been translated.
type MemRef struct {
	Address       uint64
	VirtualPage   uint64
	Offset        int
	PhysicalFrame int
}

// NewMemRef splits a virtual address into its page and offset components.
func NewMemRef(addr uint64) MemRef {
	return MemRef{
		Address:       addr,
		VirtualPage:   addr / PageSize,
		Offset:        int(addr % PageSize),
		PhysicalFrame: NoOwner,
	}
}

// Resolved reports whether the MMU has already assigned a physical frame.
func (m MemRef) Resolved() bool {
	return m.PhysicalFrame != NoOwner
}
