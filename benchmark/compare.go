package benchmark

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Comparison relates a candidate run to a baseline run.
type Comparison struct {
	Baseline      string  `json:"baseline"`
	Candidate     string  `json:"candidate"`
	BaselineMean  float64 `json:"baseline_mean_ms"`
	CandidateMean float64 `json:"candidate_mean_ms"`
	// Speedup is baseline mean / candidate mean. Above 1 the candidate is faster.
	Speedup float64 `json:"speedup"`
	// PercentChange is the change of the candidate mean relative to the baseline.
	// Negative values mean the candidate is faster.
	PercentChange float64 `json:"percent_change"`
}

// Compare relates candidate to baseline by their mean times.
func Compare(baseline, candidate *Report) Comparison {
	c := Comparison{
		Baseline:      baseline.Name,
		Candidate:     candidate.Name,
		BaselineMean:  baseline.Mean,
		CandidateMean: candidate.Mean,
	}

	switch {
	case baseline.Mean == candidate.Mean:
		c.Speedup = 1
	case candidate.Mean == 0:
		c.Speedup = math.Inf(1)
		c.PercentChange = -100
	case baseline.Mean == 0:
		c.PercentChange = math.Inf(1)
	default:
		c.Speedup = baseline.Mean / candidate.Mean
		c.PercentChange = (candidate.Mean - baseline.Mean) / baseline.Mean * 100
	}
	return c
}

func (c Comparison) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== %s vs %s ===\n", c.Baseline, c.Candidate)
	fmt.Fprintf(&b, "Speedup:    %.2fx\n", c.Speedup)
	switch {
	case c.PercentChange < 0:
		fmt.Fprintf(&b, "Change:     %s is %.2f%% faster\n", c.Candidate, -c.PercentChange)
	case c.PercentChange > 0:
		fmt.Fprintf(&b, "Change:     %s is %.2f%% slower\n", c.Candidate, c.PercentChange)
	default:
		b.WriteString("Change:     none\n")
	}
	return b.String()
}

// WriteTo writes the plain-text comparison block to w.
func (c Comparison) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}
