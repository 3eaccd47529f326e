package engine

import "math/rand"

// nonPreemptive runs each scheduled task to completion within its epoch:
// the quantum is always the task's full remaining work (spec.md §4.8).
type nonPreemptive struct{}

func (nonPreemptive) Process(cores []*Core, w *Workload, lookup TaskLookup, rng *rand.Rand, now int64) int64 {
	return processEpoch(cores, w, lookup, rng, now, fullQuantum)
}
