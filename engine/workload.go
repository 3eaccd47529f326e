package engine

import "math/rand"

// SortOrder selects one of the orderings Workload.Sort supports.
type SortOrder int

const (
	SortWorkAsc SortOrder = iota
	SortWorkDesc
	SortArrivalAsc
	SortRemainingWorkAsc
	SortShuffle
)

// Workload owns every task for the lifetime of a simulation: the master
// list (indexable by stable id), the pre-arrival queue, the N+2 per-core
// buckets (index N is orphan, index N+1 is waiting), and the finished
// queue. Every task is in exactly one of these locations or in a core's
// run queue at any time; the Workload does not track run queues.
type Workload struct {
	tasks      []*Task // master list, index == Task.ID
	preArrival []*Task // sorted ascending by arrival

	numCores int
	buckets  [][]*Task // [0..numCores-1] per-core, [numCores] orphan, [numCores+1] waiting

	Finished []*Task
}

// OrphanBucket and WaitingBucket return the fixed indices spec.md §3
// reserves for the orphan and waiting buckets.
func (w *Workload) OrphanBucket() int  { return w.numCores }
func (w *Workload) WaitingBucket() int { return w.numCores + 1 }

// NewWorkload builds a Workload from already-constructed tasks, sorting
// the pre-arrival queue by arrival time ascending.
func NewWorkload(tasks []*Task, numCores int) *Workload {
	pre := make([]*Task, len(tasks))
	copy(pre, tasks)
	sortByArrival(pre)

	w := &Workload{
		tasks:      tasks,
		preArrival: pre,
		numCores:   numCores,
		buckets:    make([][]*Task, numCores+2),
	}
	return w
}

// TaskByID implements TaskLookup.
func (w *Workload) TaskByID(id int) (*Task, bool) {
	if id < 0 || id >= len(w.tasks) {
		return nil, false
	}
	return w.tasks[id], true
}

// TotalTasks returns the size of the master task list.
func (w *Workload) TotalTasks() int {
	return len(w.tasks)
}

// CurrTasks returns the number of tasks that have arrived (i.e. are no
// longer in the pre-arrival queue).
func (w *Workload) CurrTasks() int {
	return len(w.tasks) - len(w.preArrival)
}

// Done reports whether every task has reached the finished queue.
func (w *Workload) Done() bool {
	return len(w.Finished) == len(w.tasks)
}

// Bucket returns the tasks currently queued at bucket index idx.
func (w *Workload) Bucket(idx int) []*Task {
	return w.buckets[idx]
}

// SetBucket replaces the contents of bucket idx.
func (w *Workload) SetBucket(idx int, tasks []*Task) {
	w.buckets[idx] = tasks
}

// PushBucket appends a task to bucket idx.
func (w *Workload) PushBucket(idx int, t *Task) {
	w.buckets[idx] = append(w.buckets[idx], t)
}

// DrainBucket removes and returns all tasks in bucket idx, leaving it empty.
func (w *Workload) DrainBucket(idx int) []*Task {
	tasks := w.buckets[idx]
	w.buckets[idx] = nil
	return tasks
}

// CheckArrivals admits every pre-arrival task with Arrival <= now into the
// waiting bucket. Because preArrival is sorted ascending by arrival, this
// only ever scans a prefix (spec.md §4.6).
func (w *Workload) CheckArrivals(now int64) {
	i := 0
	for i < len(w.preArrival) && w.preArrival[i].Arrival <= now {
		i++
	}
	if i == 0 {
		return
	}
	w.PushWaiting(w.preArrival[:i]...)
	w.preArrival = w.preArrival[i:]
}

// PushWaiting appends tasks to the waiting bucket.
func (w *Workload) PushWaiting(tasks ...*Task) {
	w.buckets[w.WaitingBucket()] = append(w.buckets[w.WaitingBucket()], tasks...)
}

// Finish moves a task into the finished queue.
func (w *Workload) Finish(t *Task) {
	w.Finished = append(w.Finished, t)
}

// Sort reorders a bucket's tasks in place per the requested order.
// SortRemainingWorkAsc is stable on task id as a tie-breaker, per
// spec.md §4.6.
func (w *Workload) Sort(idx int, order SortOrder, rng *rand.Rand) {
	switch order {
	case SortWorkAsc:
		sortTasks(w.buckets[idx], func(a, b *Task) bool { return a.Work < b.Work })
	case SortWorkDesc:
		sortTasks(w.buckets[idx], func(a, b *Task) bool { return a.Work > b.Work })
	case SortArrivalAsc:
		sortByArrival(w.buckets[idx])
	case SortRemainingWorkAsc:
		sortTasksStable(w.buckets[idx], func(a, b *Task) bool {
			if a.WorkLeft() != b.WorkLeft() {
				return a.WorkLeft() < b.WorkLeft()
			}
			return a.ID < b.ID
		})
	case SortShuffle:
		shuffleTasks(w.buckets[idx], rng)
	}
}

func sortByArrival(tasks []*Task) {
	sortTasks(tasks, func(a, b *Task) bool { return a.Arrival < b.Arrival })
}

// sortTasks is a stable O(n^2) insertion sort. It is used on buckets and,
// via sortByArrival, on the whole pre-arrival list in NewWorkload.
func sortTasks(tasks []*Task, less func(a, b *Task) bool) {
	for i := 1; i < len(tasks); i++ {
		for j := i; j > 0 && less(tasks[j], tasks[j-1]); j-- {
			tasks[j], tasks[j-1] = tasks[j-1], tasks[j]
		}
	}
}

// sortTasksStable is identical to sortTasks here: insertion sort is
// naturally stable, so the "stable" variant exists only to name the
// requirement at call sites (spec.md §4.6 remaining-work tie-break).
func sortTasksStable(tasks []*Task, less func(a, b *Task) bool) {
	sortTasks(tasks, less)
}

// shuffleTasks performs a Fisher-Yates shuffle in place, drawing from rng.
func shuffleTasks(tasks []*Task, rng *rand.Rand) {
	for i := len(tasks) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		tasks[i], tasks[j] = tasks[j], tasks[i]
	}
}
