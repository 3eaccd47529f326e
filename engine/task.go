package engine

// refTouch records which cache set and physical page a single processed
// reference touched. Indexed by reference position, length == Task.Work.
type refTouch struct {
	CacheSet      int
	PhysicalPage  uint64
}

// Task models one unit of scheduled work: its arrival, its full memory
// reference stream, and the bookkeeping the engine accumulates as it is
// processed across one or more epochs.
type Task struct {
	ID       int
	RealID   int // identity from the workload file, distinct from the stable slice index
	Arrival  int64
	Work     uint64 // total work in cycles == len(MemAccesses)
	Processed uint64 // 0 <= Processed <= Work; invariant Processed == memptr

	Waiting int64 // accumulated waiting time
	LastEntry int64
	LastExit  int64

	PageHits    int64
	PageFaults  int64
	CacheHits   int64
	CacheMisses int64

	MemAccesses []MemRef
	memptr      uint64

	PageTable *PageTable
	history   []refTouch // length == Work, filled in as references are walked

	// AssignedCore is the sticky core id for SCA, or NoOwner if unassigned.
	AssignedCore int
}

// NewTask constructs a task from its identity, arrival time, and verbatim
// address stream. The page table is sized ceil(work/PageSize)+1 per
// spec.md §3.
func NewTask(id, realID int, arrival int64, addrs []uint64) *Task {
	work := uint64(len(addrs))
	refs := make([]MemRef, work)
	for i, a := range addrs {
		refs[i] = NewMemRef(a)
	}
	numLines := int((work+PageSize-1)/PageSize) + 1
	return &Task{
		ID:           id,
		RealID:       realID,
		Arrival:      arrival,
		Work:         work,
		MemAccesses:  refs,
		PageTable:    NewPageTable(numLines),
		history:      make([]refTouch, work),
		AssignedCore: NoOwner,
	}
}

// WorkLeft returns the number of cycles (references) not yet processed.
func (t *Task) WorkLeft() uint64 {
	return t.Work - t.Processed
}

// Finished reports whether every reference has been walked.
func (t *Task) Finished() bool {
	return t.Processed == t.Work
}

// Memptr returns the current reference cursor, which always equals
// Processed (spec.md §3 invariant).
func (t *Task) Memptr() uint64 {
	return t.memptr
}

// RecordTouch stores which cache set and physical page the reference at
// the current cursor position touched, then advances the cursor and the
// processed counter together, preserving memptr == Processed.
func (t *Task) RecordTouch(cacheSet int, physPage uint64) {
	t.history[t.memptr] = refTouch{CacheSet: cacheSet, PhysicalPage: physPage}
	t.memptr++
	t.Processed = t.memptr
}

// Fingerprint returns the last w cache-set indices touched, i.e. the
// suffix history[memptr-w : memptr]. If fewer than w references have been
// processed, the available prefix is returned (shorter than w).
func (t *Task) Fingerprint(w int) []int {
	if w <= 0 {
		return nil
	}
	n := int(t.memptr)
	if w > n {
		w = n
	}
	out := make([]int, w)
	for i := 0; i < w; i++ {
		out[i] = t.history[n-w+i].CacheSet
	}
	return out
}
