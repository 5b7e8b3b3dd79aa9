package benchmark

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		median  float64
	}{
		{name: "single", samples: []float64{7}, median: 7},
		{name: "odd", samples: []float64{5, 1, 3}, median: 3},
		{name: "even picks upper middle", samples: []float64{4, 1, 3, 2}, median: 3},
		{name: "two", samples: []float64{20, 10}, median: 20},
		{name: "even with duplicates", samples: []float64{1, 1, 9, 9, 2, 8}, median: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]float64(nil), tt.samples...)

			report := Summarize(tt.name, input)
			assert.Equal(t, tt.median, report.Median)
			assert.Equal(t, tt.samples, input, "the sample must not be reordered")
			assert.LessOrEqual(t, report.Min, report.Mean)
			assert.LessOrEqual(t, report.Mean, report.Max)
		})
	}
}

func TestSummarizeEmpty(t *testing.T) {
	report := Summarize("empty", nil)
	assert.Equal(t, 0, report.Iterations)
	assert.Zero(t, report.Mean)
}

func TestReportWriteTo(t *testing.T) {
	report := Summarize("RGD", []float64{1, 2, 3, 4})
	report.Memory = MemoryMetrics{TotalAllocBytes: 2048, Mallocs: 4, NumGC: 1}

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	assert.Equal(t, "\n=== RGD ===\n"+
		"Iterations: 4\n"+
		"Mean:       2.5000 ms\n"+
		"Median:     3.0000 ms\n"+
		"Std Dev:    1.1180 ms\n"+
		"Min:        1.0000 ms\n"+
		"Max:        4.0000 ms\n"+
		"Allocated:  2.0 KiB in 4 allocs (1 GC)\n", buf.String())
}

func TestCompare(t *testing.T) {
	baseline := &Report{Name: "opencv", Mean: 4}
	candidate := &Report{Name: "std", Mean: 2}

	c := Compare(baseline, candidate)
	assert.Equal(t, 2.0, c.Speedup)
	assert.Equal(t, -50.0, c.PercentChange)
	assert.Contains(t, c.String(), "=== opencv vs std ===")
	assert.Contains(t, c.String(), "std is 50.00% faster")

	c = Compare(candidate, baseline)
	assert.Equal(t, 0.5, c.Speedup)
	assert.Contains(t, c.String(), "opencv is 100.00% slower")

	c = Compare(baseline, baseline)
	assert.Equal(t, 1.0, c.Speedup)
	assert.Contains(t, c.String(), "Change:     none")
}
