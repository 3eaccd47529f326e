package engine

// WorkloadRecord is one per-iteration snapshot of how much work and how
// many tasks a core was handed, used by the imbalance statistic and by
// the grouping optimizers.
type WorkloadRecord struct {
	WorkloadAssigned uint64
	TasksAssigned    int
}

// Core owns its private cache and MMU, a run queue of currently-scheduled
// tasks, and the counters spec.md §3 assigns to a core.
type Core struct {
	ID       int
	Capacity int

	Cache *Cache
	MMU   *MMU

	RunQueue []*Task

	AccumulatedWorkload uint64
	ContentionBias      int64
	History             []WorkloadRecord

	PageHits    int64
	PageFaults  int64
	CacheHits   int64
	CacheMisses int64

	// BusyTicks is the running total of this core's per-epoch accumulated
	// penalty across the whole simulation; its max over cores is the
	// makespan statistic (spec.md §6).
	BusyTicks int64
}

// NewCore creates a core with its own cache and MMU backed by the shared RAM.
func NewCore(id, capacity int, ram *RAM, numSets, numWays, numBlocks int) *Core {
	return &Core{
		ID:       id,
		Capacity: capacity,
		Cache:    NewCache(numSets, numWays, numBlocks),
		MMU:      NewMMU(ram),
	}
}

// Populate appends task to the run queue and accounts its remaining work
// towards the core's assigned workload. Panics if capacity is exceeded
// (spec.md §3 invariant len(run_queue) <= capacity).
func (c *Core) Populate(task *Task) {
	if len(c.RunQueue) >= c.Capacity {
		panic("core: populate exceeds capacity")
	}
	c.RunQueue = append(c.RunQueue, task)
	c.AccumulatedWorkload += task.WorkLeft()
}

// Vacate empties the run queue. The caller is responsible for having
// already placed the tasks elsewhere (finished queue or orphan bucket).
func (c *Core) Vacate() {
	c.RunQueue = c.RunQueue[:0]
}

// SetContention records the signed contention bias applied to this core's
// next processing epoch.
func (c *Core) SetContention(v int64) {
	c.ContentionBias = v
}

// RecordWorkloads appends one record to the per-iteration scheduling
// history.
func (c *Core) RecordWorkloads(workload uint64, numTasks int) {
	c.History = append(c.History, WorkloadRecord{WorkloadAssigned: workload, TasksAssigned: numTasks})
}

// Translate forwards to the core's MMU, charging page-fault counters.
func (c *Core) Translate(task *Task, ref *MemRef, lookup TaskLookup) bool {
	hit := c.MMU.Translate(task, ref, lookup)
	if hit {
		c.PageHits++
	} else {
		c.PageFaults++
	}
	return hit
}

// CheckCache forwards to the core's cache, charging hit/miss counters.
func (c *Core) CheckCache(ref *MemRef) bool {
	hit := c.Cache.Check(ref)
	if hit {
		c.CacheHits++
	} else {
		c.CacheMisses++
	}
	return hit
}

// ReplaceCache forwards to the core's cache on a miss.
func (c *Core) ReplaceCache(ref *MemRef) {
	c.Cache.Replace(ref)
}
