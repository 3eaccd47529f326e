package engine

// SCAScheduler (same-core-always) binds a task to the first core that
// dispatches it and keeps it sticky to that core thereafter. Tasks
// destined for a different core are rotated to the bucket's tail. A
// visited counter, initialized to the bucket size at entry, guards
// against an infinite rotation when every remaining task belongs to some
// other core (spec.md §4.7).
type SCAScheduler struct{}

func (SCAScheduler) Schedule(core *Core, w *Workload, bucketIdx int) int {
	remaining := availableCapacity(core)
	if remaining == 0 {
		return 0
	}

	bucket := w.Bucket(bucketIdx)
	visited := len(bucket)
	dispatched := 0

	for dispatched < remaining && len(bucket) > 0 && visited > 0 {
		t := bucket[0]
		bucket = bucket[1:]
		visited--

		if t.AssignedCore != NoOwner && t.AssignedCore != core.ID {
			bucket = append(bucket, t)
			continue
		}

		t.AssignedCore = core.ID
		core.Populate(t)
		dispatched++
	}

	w.SetBucket(bucketIdx, bucket)
	return dispatched
}
