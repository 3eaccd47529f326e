package engine

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ArchSpec is one line of the architecture file: a core's capacity and
// cache geometry (spec.md §6).
type ArchSpec struct {
	Capacity  int
	CacheSets int
	CacheWays int
	NumBlocks int
}

// LoadWorkload reads the workload file format spec.md §6 defines: line 1
// is decimal ntasks, followed by one line per task of
// "real_id work arrival addr_0 ... addr_{work-1}". Tasks are constructed
// in file order and assigned stable ids 0..ntasks-1.
func LoadWorkload(path string) ([]*Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("workload file %s: missing ntasks line", path)
	}
	ntasks, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("workload file %s: bad ntasks: %w", path, err)
	}

	tasks := make([]*Task, 0, ntasks)
	for id := 0; id < ntasks; id++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("workload file %s: expected %d tasks, found %d", path, ntasks, len(tasks))
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("workload file %s: line %d: too few fields", path, id+2)
		}

		realID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("workload file %s: line %d: bad real_id: %w", path, id+2, err)
		}
		work, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("workload file %s: line %d: bad work: %w", path, id+2, err)
		}
		arrival, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("workload file %s: line %d: bad arrival: %w", path, id+2, err)
		}

		addrFields := fields[3:]
		if uint64(len(addrFields)) != work {
			return nil, fmt.Errorf("workload file %s: line %d: expected %d addresses, found %d", path, id+2, work, len(addrFields))
		}
		addrs := make([]uint64, work)
		for i, af := range addrFields {
			a, err := strconv.ParseUint(af, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("workload file %s: line %d: bad address %d: %w", path, id+2, i, err)
			}
			addrs[i] = a
		}

		tasks = append(tasks, NewTask(id, realID, arrival, addrs))
	}

	return tasks, nil
}

// LoadArchitecture reads the architecture file format spec.md §6 defines:
// line 1 is decimal ncores, followed by one "capacity cache_sets
// cache_ways num_blocks" line per core. If override > 0, only
// min(ncores, override) lines are used.
func LoadArchitecture(path string, override int) ([]ArchSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening architecture file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, fmt.Errorf("architecture file %s: missing ncores line", path)
	}
	ncores, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("architecture file %s: bad ncores: %w", path, err)
	}

	want := ncores
	if override > 0 && override < want {
		want = override
	}

	specs := make([]ArchSpec, 0, want)
	for i := 0; i < ncores; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("architecture file %s: expected %d cores, found %d", path, ncores, i)
		}
		if i >= want {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 {
			return nil, fmt.Errorf("architecture file %s: line %d: expected 4 fields, found %d", path, i+2, len(fields))
		}
		vals := make([]int, 4)
		for j, fld := range fields {
			v, err := strconv.Atoi(fld)
			if err != nil {
				return nil, fmt.Errorf("architecture file %s: line %d: bad field %d: %w", path, i+2, j, err)
			}
			vals[j] = v
		}
		specs = append(specs, ArchSpec{Capacity: vals[0], CacheSets: vals[1], CacheWays: vals[2], NumBlocks: vals[3]})
	}

	return specs, nil
}

// ApplyKernel transforms a task's work count per spec.md §6's --kernel
// flag. It only computes the new count; cmd's applyKernel then rebuilds
// the task with a reference stream of that length, cycling through the
// addresses read from the workload file. Unknown kernel names return
// load unchanged.
func ApplyKernel(kernel string, load uint64) uint64 {
	switch kernel {
	case "linear":
		return load
	case "logarithmic":
		if load == 0 {
			return 0
		}
		f := float64(load)
		return uint64(math.Floor(f * math.Log2(f)))
	case "quadratic":
		return load * load
	default:
		return load
	}
}
