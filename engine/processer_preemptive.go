package engine

import "math/rand"

// preemptive covers both the random and round-robin preemptive
// processers; they differ only in how the per-task quantum is chosen
// (spec.md §4.8). Partially-done tasks are returned to the orphan bucket
// by the shared processEpoch logic.
type preemptive struct {
	quantum quantumFunc
}

func (p preemptive) Process(cores []*Core, w *Workload, lookup TaskLookup, rng *rand.Rand, now int64) int64 {
	return processEpoch(cores, w, lookup, rng, now, p.quantum)
}
