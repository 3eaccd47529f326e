// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Theeeccoo/scheduler/engine"
)

var (
	archPath      string
	inputPath     string
	kernel        string
	ncores        int
	processKind   string
	batchSize     int
	winsize       int
	seed          int64
	optimize      int
	qlearnCfgPath string
	qtablePath    string
	epsilonPath   string
	logLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "scheduler {fcfs|srtf|sca}",
	Short: "Multi-core task-scheduling simulator",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulation,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&archPath, "arch", "", "architecture file (required)")
	rootCmd.Flags().StringVar(&inputPath, "input", "", "workload file (required)")
	rootCmd.Flags().StringVar(&kernel, "kernel", "linear", "work transform: linear|logarithmic|quadratic")
	rootCmd.Flags().IntVar(&ncores, "ncores", 0, "override the architecture file's core count (0 = use file's value)")
	rootCmd.Flags().StringVar(&processKind, "process", "non-preemptive", "non-preemptive|random-preemptive|rr-preemptive")
	rootCmd.Flags().IntVar(&batchSize, "batchsize", 1, "minimum arrived tasks before admission proceeds")
	rootCmd.Flags().IntVar(&winsize, "winsize", 1, "memory-reference fingerprint window size")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "master RNG seed")
	rootCmd.Flags().IntVar(&optimize, "optimize", 0, "0=none 1=k-means 2=round-robin-fill 3=q-learning")
	rootCmd.Flags().StringVar(&qlearnCfgPath, "qlearn-config", "", "optional YAML Q-learning hyperparameter file")
	rootCmd.Flags().StringVar(&qtablePath, "qtable", "qtable.bin", "Q-table persistence file")
	rootCmd.Flags().StringVar(&epsilonPath, "epsfile", "epsilon.bin", "epsilon persistence file")
	rootCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	_ = rootCmd.MarkFlagRequired("arch")
	_ = rootCmd.MarkFlagRequired("input")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	schedName := args[0]
	switch schedName {
	case "fcfs", "srtf", "sca":
	default:
		return fmt.Errorf("invalid scheduler %q; valid schedulers: [fcfs, srtf, sca]", schedName)
	}

	switch processKind {
	case "non-preemptive", "random-preemptive", "rr-preemptive":
	default:
		return fmt.Errorf("invalid --process %q; valid processers: [non-preemptive, random-preemptive, rr-preemptive]", processKind)
	}
	switch kernel {
	case "linear", "logarithmic", "quadratic":
	default:
		return fmt.Errorf("invalid --kernel %q; valid kernels: [linear, logarithmic, quadratic]", kernel)
	}

	if batchSize < 1 {
		return fmt.Errorf("--batchsize must be >= 1, got %d", batchSize)
	}
	if winsize <= 0 || winsize > engine.Quantum {
		return fmt.Errorf("--winsize must satisfy 0 < winsize <= %d, got %d", engine.Quantum, winsize)
	}
	if optimize < 0 || optimize > 3 {
		return fmt.Errorf("--optimize must be 0, 1, 2, or 3, got %d", optimize)
	}

	specs, err := engine.LoadArchitecture(archPath, ncores)
	if err != nil {
		return err
	}
	rawTasks, err := engine.LoadWorkload(inputPath)
	if err != nil {
		return err
	}
	tasks := applyKernel(rawTasks, kernel)

	ram := engine.NewRAM(engine.RAMSize, engine.PageSize)
	cores := make([]*engine.Core, len(specs))
	for i, s := range specs {
		cores[i] = engine.NewCore(i, s.Capacity, ram, s.CacheSets, s.CacheWays, s.NumBlocks)
	}

	workload := engine.NewWorkload(tasks, len(cores))
	scheduler := engine.NewScheduler(schedName)
	processer := engine.NewProcesser(processKind)
	rng := engine.NewPartitionedRNG(seed)

	mode := engine.OptimizeMode(optimize)
	driver := engine.NewDriver(workload, cores, scheduler, processer, rng, mode, batchSize, winsize)

	if mode == engine.OptimizeQLearn {
		qcfg, err := LoadQLearnConfig(qlearnCfgPath, winsize)
		if err != nil {
			return err
		}
		ql := engine.NewQLearnGrouper(qcfg, len(cores), rng.ForSubsystem(engine.SubsystemQLearn))
		engine.LoadQLearnState(ql, qtablePath, epsilonPath)
		driver.QLearn = ql
	}

	logrus.Infof("scheduler=%s process=%s optimize=%d batchsize=%d winsize=%d seed=%d",
		schedName, processKind, optimize, batchSize, winsize, seed)

	driver.Run()

	if driver.QLearn != nil {
		if err := engine.SaveQLearnState(driver.QLearn, qtablePath, epsilonPath); err != nil {
			return err
		}
	}

	printOutput(workload, cores)
	return nil
}

// applyKernel rebuilds each task's memory reference stream at the
// kernel-transformed work length, cycling through the original stream
// (spec.md §6 --kernel; original_source/src/simsched/main.c).
func applyKernel(tasks []*engine.Task, kernel string) []*engine.Task {
	if kernel == "linear" {
		return tasks
	}
	out := make([]*engine.Task, len(tasks))
	for i, t := range tasks {
		newWork := engine.ApplyKernel(kernel, t.Work)
		orig := make([]uint64, t.Work)
		for j := range orig {
			orig[j] = t.MemAccesses[j].Address
		}
		addrs := make([]uint64, newWork)
		for j := range addrs {
			addrs[j] = orig[j%len(orig)]
		}
		out[i] = engine.NewTask(t.ID, t.RealID, t.Arrival, addrs)
	}
	return out
}

// printOutput emits one line per finished task in ascending-waiting-time
// order, then the trailing summary block (spec.md §6).
func printOutput(w *engine.Workload, cores []*engine.Core) {
	finished := append([]*engine.Task(nil), w.Finished...)
	sort.Slice(finished, func(i, j int) bool { return finished[i].Waiting < finished[j].Waiting })

	for _, t := range finished {
		fmt.Printf("task %d waiting=%d page_hits=%d page_faults=%d cache_hits=%d cache_misses=%d\n",
			t.RealID, t.Waiting, t.PageHits, t.PageFaults, t.CacheHits, t.CacheMisses)
	}

	r := engine.BuildReport(w, cores)
	fmt.Printf("waiting_time_sum=%d\n", r.WaitingTimeSum)
	fmt.Printf("waiting_time_p99=%.4f\n", r.WaitingTimeP99)
	fmt.Printf("slowdown_p99=%.4f\n", r.SlowdownP99)
	fmt.Printf("page_hits=%d page_faults=%d\n", r.PageHits, r.PageFaults)
	fmt.Printf("cache_hits=%d cache_misses=%d\n", r.CacheHits, r.CacheMisses)
	fmt.Printf("total_unbalancement=%d\n", r.TotalUnbalancement)
	fmt.Printf("makespan=%d\n", r.Makespan)
	fmt.Printf("cost=%d\n", r.Cost)
	fmt.Printf("throughput=%.6f\n", r.Throughput)
	fmt.Printf("coefficient_of_variation=%.6f\n", r.CoefficientVariation)
	fmt.Printf("slowdown=%.6f\n", r.Slowdown)
}
