package engine

// SRTFScheduler (shortest-remaining-time-first) sorts the bucket ascending
// by remaining work, tie-breaking on task id, before draining it FCFS-style
// (spec.md §4.7).
type SRTFScheduler struct{}

func (s SRTFScheduler) Schedule(core *Core, w *Workload, bucketIdx int) int {
	if len(w.Bucket(bucketIdx)) >= 2 {
		w.Sort(bucketIdx, SortRemainingWorkAsc, nil)
	}
	return FCFSScheduler{}.Schedule(core, w, bucketIdx)
}
