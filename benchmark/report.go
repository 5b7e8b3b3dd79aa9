package benchmark

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"
)

// Report is the statistical summary of one benchmark run. All durations are
// in milliseconds.
type Report struct {
	Name       string        `json:"name"`
	Iterations int           `json:"iterations"`
	Mean       float64       `json:"mean_ms"`
	Median     float64       `json:"median_ms"`
	StdDev     float64       `json:"std_dev_ms"`
	Min        float64       `json:"min_ms"`
	Max        float64       `json:"max_ms"`
	Memory     MemoryMetrics `json:"memory"`
}

// Summarize reduces a timing sample to a Report. The sample is not modified.
//
// The median is sorted[n/2]: for an even count it is the upper of the two
// middle values, never their average. The standard deviation is the
// population standard deviation.
//
// Arguments:
//   - name: The name of the run.
//   - samples: Elapsed milliseconds per iteration.
//
// Returns:
//   - *Report: The summary. An empty sample yields a report with zero statistics.
func Summarize(name string, samples []float64) *Report {
	report := &Report{Name: name, Iterations: len(samples)}
	if len(samples) == 0 {
		return report
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mean, stdDev := stat.PopMeanStdDev(samples, nil)
	if math.IsNaN(stdDev) {
		stdDev = 0
	}

	report.Mean = mean
	report.StdDev = stdDev
	report.Median = sorted[len(sorted)/2]
	report.Min = sorted[0]
	report.Max = sorted[len(sorted)-1]
	return report
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== %s ===\n", r.Name)
	fmt.Fprintf(&b, "Iterations: %d\n", r.Iterations)
	fmt.Fprintf(&b, "Mean:       %.4f ms\n", r.Mean)
	fmt.Fprintf(&b, "Median:     %.4f ms\n", r.Median)
	fmt.Fprintf(&b, "Std Dev:    %.4f ms\n", r.StdDev)
	fmt.Fprintf(&b, "Min:        %.4f ms\n", r.Min)
	fmt.Fprintf(&b, "Max:        %.4f ms\n", r.Max)
	if r.Memory.Captured() {
		fmt.Fprintf(&b, "Allocated:  %s in %d allocs (%d GC)\n",
			humanize.IBytes(r.Memory.TotalAllocBytes), r.Memory.Mallocs, r.Memory.NumGC)
	}
	return b.String()
}

// WriteTo writes the plain-text report block to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
