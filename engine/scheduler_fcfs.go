package engine

// FCFSScheduler dispatches the oldest-queued tasks first: min(capacity,
// len(bucket)) tasks from the head of the bucket (spec.md §4.7).
type FCFSScheduler struct{}

func (FCFSScheduler) Schedule(core *Core, w *Workload, bucketIdx int) int {
	bucket := w.Bucket(bucketIdx)
	n := availableCapacity(core)
	if n > len(bucket) {
		n = len(bucket)
	}
	for i := 0; i < n; i++ {
		core.Populate(bucket[i])
	}
	w.SetBucket(bucketIdx, bucket[n:])
	return n
}
