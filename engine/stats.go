package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Report is the final summary block spec.md §6 requires, computed once a
// simulation's Workload reports Done().
type Report struct {
	WaitingTimeSum      int64
	WaitingTimeP99       float64
	SlowdownP99          float64
	PageHits             int64
	PageFaults           int64
	CacheHits            int64
	CacheMisses          int64
	TotalUnbalancement   int64
	Makespan             int64
	Cost                 int64
	Throughput           float64
	CoefficientVariation float64
	Slowdown             float64 // max/min per-core workload
}

// taskSlowdown is the per-task turnaround-over-service ratio: a task that
// never waited has slowdown 1.0.
func taskSlowdown(t *Task) float64 {
	if t.Work == 0 {
		return 1.0
	}
	return float64(t.Waiting+int64(t.Work)) / float64(t.Work)
}

// BuildReport aggregates every statistic spec.md §6 names across the
// finished tasks and the final core states. Percentiles and the
// coefficient of variation are computed with gonum/stat.
func BuildReport(w *Workload, cores []*Core) Report {
	var r Report

	waits := make([]float64, len(w.Finished))
	slowdowns := make([]float64, len(w.Finished))
	for i, t := range w.Finished {
		r.WaitingTimeSum += t.Waiting
		waits[i] = float64(t.Waiting)
		slowdowns[i] = taskSlowdown(t)
	}
	sort.Float64s(waits)
	sort.Float64s(slowdowns)
	r.WaitingTimeP99 = percentile(waits, 0.99)
	r.SlowdownP99 = percentile(slowdowns, 0.99)

	var maxBusy int64
	workloads := make([]float64, len(cores))
	for i, c := range cores {
		r.PageHits += c.PageHits
		r.PageFaults += c.PageFaults
		r.CacheHits += c.Cache.Hits
		r.CacheMisses += c.Cache.Misses
		if c.BusyTicks > maxBusy {
			maxBusy = c.BusyTicks
		}
		workloads[i] = float64(c.AccumulatedWorkload)
	}
	r.Makespan = maxBusy
	r.Cost = r.Makespan * int64(len(cores))
	if r.Makespan > 0 {
		r.Throughput = float64(w.TotalTasks()) / float64(r.Makespan)
	}

	mean := stat.Mean(workloads, nil)
	if mean != 0 {
		r.CoefficientVariation = stat.StdDev(workloads, nil) / mean
	}

	minW, maxW := minMax(workloads)
	if minW != 0 {
		r.Slowdown = maxW / minW
	}

	r.TotalUnbalancement = totalUnbalancement(cores)

	return r
}

// percentile returns the value at the given quantile (0,1] of an
// already-sorted slice, using gonum/stat's empirical CDF inverse.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

func minMax(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// totalUnbalancement sums, over every recorded epoch and every pair of
// cores, the absolute difference in tasks assigned that epoch (spec.md
// §6). Cores whose History lengths differ are compared only over the
// shared prefix.
func totalUnbalancement(cores []*Core) int64 {
	var total int64
	for i := 0; i < len(cores); i++ {
		for j := i + 1; j < len(cores); j++ {
			epochs := len(cores[i].History)
			if len(cores[j].History) < epochs {
				epochs = len(cores[j].History)
			}
			for e := 0; e < epochs; e++ {
				diff := cores[i].History[e].TasksAssigned - cores[j].History[e].TasksAssigned
				if diff < 0 {
					diff = -diff
				}
				total += int64(diff)
			}
		}
	}
	return total
}
