// Package benchmark - Timing engine that runs arbitrary operations repeatedly
// and reduces the timings to descriptive statistics.
package benchmark

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/raulk/clock"
	"go.uber.org/zap"
)

// DefaultIterations is the number of timed iterations used when a run asks for zero.
const DefaultIterations = 100

// ErrInvalidIterations is returned for negative iteration counts.
var ErrInvalidIterations = errors.New("iterations must be positive")

// Operation is the unit of work being measured. The runner knows nothing else
// about it. A non-nil error aborts the run.
type Operation func() error

// Options configures a Runner.
type Options struct {
	// Clock supplies monotonic timestamps (default: the system clock).
	Clock clock.Clock
	// Logger receives run boundaries at debug level (default: no-op).
	Logger *zap.Logger
	// SkipMemoryStats disables the allocation delta captured around the timed loop.
	SkipMemoryStats bool
}

// Runner times operations. Runs are strictly sequential; a Runner must not be
// shared between goroutines.
type Runner struct {
	clock       clock.Clock
	logger      *zap.Logger
	memoryStats bool
}

// NewRunner creates a Runner with the specified options.
//
// Arguments:
//   - opts: Configuration options for the runner.
//
// Returns:
//   - *Runner: A configured runner.
func NewRunner(opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{
		clock:       opts.Clock,
		logger:      opts.Logger,
		memoryStats: !opts.SkipMemoryStats,
	}
}

// Time invokes op once and returns the elapsed wall-clock time in milliseconds.
func (r *Runner) Time(op Operation) (float64, error) {
	start := r.clock.Now()
	err := op()
	elapsed := r.clock.Now().Sub(start)
	if err != nil {
		return 0, err
	}
	return float64(elapsed) / float64(time.Millisecond), nil
}

// Sample invokes op once untimed, then times it iterations times.
//
// Arguments:
//   - op: The operation to time.
//   - iterations: The number of timed calls; 0 means DefaultIterations.
//
// Returns:
//   - []float64: Elapsed milliseconds per call, in call order.
//   - error: The first error returned by op, wrapped with the failing call.
func (r *Runner) Sample(op Operation, iterations int) ([]float64, error) {
	samples, _, err := r.collect(op, iterations, false)
	return samples, err
}

// Run samples op and summarizes the timings into a Report.
//
// Arguments:
//   - name: The name printed in the report.
//   - op: The operation to time.
//   - iterations: The number of timed calls; 0 means DefaultIterations.
//
// Returns:
//   - *Report: The summary, or nil when the run failed.
//   - error: The first error returned by op. No iteration after it is executed.
func (r *Runner) Run(name string, op Operation, iterations int) (*Report, error) {
	r.logger.Debug("benchmark started", zap.String("name", name), zap.Int("iterations", iterations))

	samples, memory, err := r.collect(op, iterations, r.memoryStats)
	if err != nil {
		r.logger.Debug("benchmark aborted", zap.String("name", name), zap.Error(err))
		return nil, errors.Wrapf(err, "benchmark %q", name)
	}

	report := Summarize(name, samples)
	report.Memory = memory
	r.logger.Debug("benchmark finished",
		zap.String("name", name),
		zap.Float64("mean_ms", report.Mean),
		zap.Float64("median_ms", report.Median),
	)
	return report, nil
}

func (r *Runner) collect(op Operation, iterations int, memoryStats bool) ([]float64, MemoryMetrics, error) {
	switch {
	case iterations < 0:
		return nil, MemoryMetrics{}, errors.Wrapf(ErrInvalidIterations, "got %d", iterations)
	case iterations == 0:
		iterations = DefaultIterations
	}

	// Warm-up run, excluded from the sample.
	if err := op(); err != nil {
		return nil, MemoryMetrics{}, errors.Wrap(err, "warm-up")
	}

	var startMem runtime.MemStats
	if memoryStats {
		runtime.GC()
		runtime.ReadMemStats(&startMem)
	}

	samples := make([]float64, 0, iterations)
	for i := 0; i < iterations; i++ {
		ms, err := r.Time(op)
		if err != nil {
			return nil, MemoryMetrics{}, errors.Wrapf(err, "iteration %d", i+1)
		}
		samples = append(samples, ms)
	}

	if !memoryStats {
		return samples, MemoryMetrics{}, nil
	}
	var endMem runtime.MemStats
	runtime.ReadMemStats(&endMem)
	return samples, MemoryMetrics{
		TotalAllocBytes: endMem.TotalAlloc - startMem.TotalAlloc,
		Mallocs:         endMem.Mallocs - startMem.Mallocs,
		NumGC:           endMem.NumGC - startMem.NumGC,
	}, nil
}
