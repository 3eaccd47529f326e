package engine

// TaskLookup resolves a stable task id to its Task, letting RAM invalidate
// a previous frame owner's page-table entry without holding a pointer
// cycle back into the workload (DESIGN NOTES §9: arena-plus-index, no
// pointer-sharing cycles).
type TaskLookup interface {
	TaskByID(id int) (*Task, bool)
}

// RAM models the shared frame pool backing every core's MMU. Frames are
// reclaimed FIFO: NextFrame never fails, it always evicts the oldest
// still-assigned frame.
type RAM struct {
	numFrames   int
	nextHand    int
	frameOwner  []int // frame -> owning task id, or NoOwner
}

// NewRAM creates a RAM of ramSize bytes split into pageSize-byte frames.
func NewRAM(ramSize, pageSize uint64) *RAM {
	n := int(ramSize / pageSize)
	owners := make([]int, n)
	for i := range owners {
		owners[i] = NoOwner
	}
	return &RAM{
		numFrames:  n,
		nextHand:   -1,
		frameOwner: owners,
	}
}

// NumFrames returns the total number of frames in the pool.
func (r *RAM) NumFrames() int {
	return r.numFrames
}

// Owner returns the task id owning frame f, or NoOwner.
func (r *RAM) Owner(f int) int {
	return r.frameOwner[f]
}

// NextFrame advances the FIFO hand, reclaims the frame from its previous
// owner (invalidating that task's page-table line pointing at it) if any,
// assigns the frame to taskID, and returns the frame id. Per spec.md §4.2,
// RAM never fails: it always reclaims.
func (r *RAM) NextFrame(taskID int, lookup TaskLookup) int {
	r.nextHand = (r.nextHand + 1) % r.numFrames
	h := r.nextHand

	if prevOwner := r.frameOwner[h]; prevOwner != NoOwner {
		if prevTask, ok := lookup.TaskByID(prevOwner); ok {
			if line := prevTask.PageTable.FindByFrame(h); line != NoOwner {
				prevTask.PageTable.Invalidate(uint64(line))
			}
		}
	}

	r.frameOwner[h] = taskID
	return h
}
