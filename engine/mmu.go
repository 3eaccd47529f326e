package engine

// MMU is a per-core virtual-to-physical address translator. It consults
// the owning task's page table and, on a miss, requests a fresh frame from
// the shared RAM.
type MMU struct {
	ram *RAM
}

// NewMMU creates an MMU backed by the given shared RAM.
func NewMMU(ram *RAM) *MMU {
	return &MMU{ram: ram}
}

// Translate resolves ref's physical frame against task's page table,
// mutating ref in place. Returns true on a page hit, false on a page
// fault (a fresh frame was requested from RAM).
func (m *MMU) Translate(task *Task, ref *MemRef, lookup TaskLookup) bool {
	i := ref.VirtualPage
	if task.PageTable.Valid(i) {
		ref.PhysicalFrame = task.PageTable.Frame(i)
		return true
	}

	f := m.ram.NextFrame(task.ID, lookup)
	task.PageTable.SetFrame(i, f)
	ref.PhysicalFrame = f
	return false
}
