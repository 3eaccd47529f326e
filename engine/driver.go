package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// OptimizeMode selects how the driver fills per-core buckets from the
// waiting/orphan tasks each iteration (spec.md §4.11).
type OptimizeMode int

const (
	OptimizeNone OptimizeMode = iota
	OptimizeKMeans
	OptimizeSimple
	OptimizeQLearn
)

// Driver owns the full simulation loop: a workload, a set of cores, the
// scheduling/processing policies, and the optional grouping optimizers.
type Driver struct {
	Workload  *Workload
	Cores     []*Core
	Scheduler Scheduler
	Processer Processer
	RNG       *PartitionedRNG

	Optimize  OptimizeMode
	BatchSize int
	Winsize   int

	KMedoidsRNG *rand.Rand
	QLearn      *QLearnGrouper

	now int64
}

// NewDriver wires together an already-constructed workload, cores, and
// policies for a single run.
func NewDriver(w *Workload, cores []*Core, sched Scheduler, proc Processer, rng *PartitionedRNG, optimize OptimizeMode, batchSize, winsize int) *Driver {
	return &Driver{
		Workload:    w,
		Cores:       cores,
		Scheduler:   sched,
		Processer:   proc,
		RNG:         rng,
		Optimize:    optimize,
		BatchSize:   batchSize,
		Winsize:     winsize,
		KMedoidsRNG: rng.ForSubsystem(SubsystemKMedoids),
	}
}

// Now returns the driver's current simulated clock.
func (d *Driver) Now() int64 { return d.now }

// Run advances the simulation to completion, following spec.md §4.11's
// loop verbatim: admission, batch gating, grouping, per-core scheduling
// with queue-contention time advance, then one processing epoch.
func (d *Driver) Run() {
	w := d.Workload
	logrus.Infof("simulation start: %d tasks across %d cores", w.TotalTasks(), len(d.Cores))

	for !w.Done() {
		w.CheckArrivals(d.now)

		if w.CurrTasks() < d.BatchSize && w.CurrTasks() != w.TotalTasks() {
			logrus.Debugf("tick %d: waiting for batch (%d/%d arrived)", d.now, w.CurrTasks(), d.BatchSize)
			d.now++
			continue
		}

		d.group()
		d.scheduleCores()
		d.processEpoch()
	}

	if d.QLearn != nil {
		d.QLearn.Close()
	}
	logrus.Infof("simulation done: now=%d, finished=%d", d.now, len(w.Finished))
}

// group fills the per-core buckets from the waiting/orphan tasks
// according to the selected optimize mode (spec.md §4.11).
func (d *Driver) group() {
	w := d.Workload

	switch d.Optimize {
	case OptimizeNone:
		waiting := w.DrainBucket(w.WaitingBucket())
		for _, t := range waiting {
			w.PushBucket(w.OrphanBucket(), t)
		}
	case OptimizeKMeans:
		if len(w.Bucket(w.OrphanBucket())) >= d.BatchSize {
			KMedoidsGroup(w, d.Winsize, DefaultKMedoidsMaxIter, d.KMedoidsRNG)
		} else {
			d.roundRobinFill()
		}
	case OptimizeQLearn:
		if d.QLearn != nil && len(w.Bucket(w.OrphanBucket())) >= d.BatchSize {
			d.QLearn.Group(w)
		} else {
			d.roundRobinFill()
		}
	case OptimizeSimple:
		d.roundRobinFill()
	default:
		d.roundRobinFill()
	}
}

// roundRobinFill distributes the waiting and orphan buckets round-robin
// across per-core buckets, respecting each core's available capacity
// (spec.md §4.11 "optimize == simple").
func (d *Driver) roundRobinFill() {
	w := d.Workload
	pool := append(w.DrainBucket(w.WaitingBucket()), w.DrainBucket(w.OrphanBucket())...)

	core := 0
	for len(pool) > 0 {
		placed := false
		for tries := 0; tries < len(d.Cores); tries++ {
			c := d.Cores[core%len(d.Cores)]
			core++
			room := c.Capacity - len(w.Bucket(c.ID))
			if room > 0 {
				w.PushBucket(c.ID, pool[0])
				pool = pool[1:]
				placed = true
				break
			}
		}
		if !placed {
			// every core's bucket is already at capacity; leave the rest as orphans
			w.SetBucket(w.OrphanBucket(), append(w.Bucket(w.OrphanBucket()), pool...))
			return
		}
	}
}

// scheduleCores dispatches each core's bucket via the scheduling policy
// in a random order, advancing the clock by queue-contention ticks and
// setting each core's contention bias (spec.md §4.11).
func (d *Driver) scheduleCores() {
	order := d.coreOrder()
	w := d.Workload

	for _, idx := range order {
		c := d.Cores[idx]
		bucketIdx := c.ID
		if d.Optimize == OptimizeNone {
			bucketIdx = w.OrphanBucket()
		}

		scheduled := d.Scheduler.Schedule(c, w, bucketIdx)
		step := int64(scheduled)
		if step < 1 {
			step = 1
		}
		d.now += step
		c.SetContention(int64(-scheduled))
		c.RecordWorkloads(c.AccumulatedWorkload, len(c.RunQueue))
	}
}

// coreOrder returns a random permutation of core indices, drawn from the
// driver's partitioned RNG subsystem reserved for scheduling order.
func (d *Driver) coreOrder() []int {
	order := make([]int, len(d.Cores))
	for i := range order {
		order[i] = i
	}
	rng := d.RNG.ForSubsystem(SubsystemCoreOrder)
	for i := len(order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// processEpoch runs one processing epoch across every core and advances
// the clock by the slowest core's accumulated penalty.
func (d *Driver) processEpoch() {
	w := d.Workload
	lookup := w
	rng := d.RNG.ForSubsystem(SubsystemProcesser)
	delta := d.Processer.Process(d.Cores, w, lookup, rng, d.now)
	d.now += delta
}
