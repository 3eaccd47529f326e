package engine

import "fmt"

// Scheduler drains a bucket into a core's run queue following the
// policy's rule, returning the number of tasks dispatched. None of the
// three policies cares how the bucket was filled (spec.md §4.7).
type Scheduler interface {
	Schedule(core *Core, w *Workload, bucketIdx int) int
}

// NewScheduler constructs a Scheduler by name. Valid names: "fcfs",
// "srtf", "sca".
func NewScheduler(name string) Scheduler {
	switch name {
	case "fcfs":
		return FCFSScheduler{}
	case "srtf":
		return SRTFScheduler{}
	case "sca":
		return SCAScheduler{}
	default:
		panic(fmt.Sprintf("unknown scheduler %q; valid schedulers: [fcfs, srtf, sca]", name))
	}
}

// availableCapacity returns how many more tasks a core's run queue can
// accept before hitting its capacity.
func availableCapacity(core *Core) int {
	n := core.Capacity - len(core.RunQueue)
	if n < 0 {
		return 0
	}
	return n
}
