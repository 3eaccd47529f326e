package engine

import (
	"fmt"
	"math/rand"
)

// Processer consumes scheduled tasks from every core's run queue, walks
// their memory references, accumulates penalties and counters, and
// returns finished/orphan tasks to the workload. It returns the epoch's
// time delta: the slowest core's accumulated penalty, which the driver
// adds to the global clock (spec.md §4.8, §4.11).
type Processer interface {
	Process(cores []*Core, w *Workload, lookup TaskLookup, rng *rand.Rand, now int64) int64
}

// NewProcesser constructs a Processer by name. Valid names:
// "non-preemptive", "random-preemptive", "rr-preemptive".
func NewProcesser(name string) Processer {
	switch name {
	case "non-preemptive":
		return nonPreemptive{}
	case "random-preemptive":
		return preemptive{quantum: randomQuantum}
	case "rr-preemptive":
		return preemptive{quantum: roundRobinQuantum}
	default:
		panic(fmt.Sprintf("unknown processer %q; valid processers: [non-preemptive, random-preemptive, rr-preemptive]", name))
	}
}

// quantumFunc returns how many references a task may consume this epoch.
type quantumFunc func(task *Task, rng *rand.Rand) uint64

// fullQuantum always returns the task's entire remaining work, i.e. no
// preemption (spec.md §4.8 non-preemptive row).
func fullQuantum(task *Task, _ *rand.Rand) uint64 {
	return task.WorkLeft()
}

// randomQuantum draws rand() mod work_left(task) + 1 references.
func randomQuantum(task *Task, rng *rand.Rand) uint64 {
	left := task.WorkLeft()
	if left == 0 {
		return 0
	}
	return uint64(rng.Int63n(int64(left))) + 1
}

// roundRobinQuantum caps a task's turn at the fixed Quantum.
func roundRobinQuantum(task *Task, _ *rand.Rand) uint64 {
	left := task.WorkLeft()
	if left < Quantum {
		return left
	}
	return Quantum
}

// processEpoch is the shared reference-walk and time-advance logic every
// Processer variant uses, parameterized only by how much work a task is
// allowed to consume this turn (spec.md §4.8).
func processEpoch(cores []*Core, w *Workload, lookup TaskLookup, rng *rand.Rand, now int64, quantum quantumFunc) int64 {
	var epochMax int64

	for _, core := range cores {
		tasks := core.RunQueue
		core.Vacate()

		var epochSpent int64
		for _, task := range tasks {
			entryMoment := now + epochSpent + core.ContentionBias
			task.Waiting += entryMoment - task.LastExit

			q := quantum(task, rng)
			for k := uint64(0); k < q && !task.Finished(); k++ {
				ref := &task.MemAccesses[task.Memptr()]

				pageHit := core.Translate(task, ref, lookup)
				if pageHit {
					task.PageHits++
				} else {
					task.PageFaults++
					epochSpent += PageFaultPenalty
				}

				cacheHit := core.CheckCache(ref)
				if cacheHit {
					task.CacheHits++
				} else {
					task.CacheMisses++
					epochSpent += MissPenalty
					core.ReplaceCache(ref)
				}

				task.RecordTouch(core.Cache.SetIndex(ref), uint64(ref.PhysicalFrame))
				epochSpent++
			}

			task.LastExit = now + epochSpent + core.ContentionBias

			if task.Finished() {
				w.Finish(task)
			} else {
				w.PushBucket(w.OrphanBucket(), task)
			}
		}

		core.BusyTicks += epochSpent
		if epochSpent > epochMax {
			epochMax = epochSpent
		}
	}

	return epochMax
}
