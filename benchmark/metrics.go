package benchmark

// MemoryMetrics captures the allocation delta across the timed iterations of
// a run. The warm-up call is not included.
type MemoryMetrics struct {
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	Mallocs         uint64 `json:"mallocs"`
	NumGC           uint32 `json:"num_gc"`
}

// Captured reports whether any memory statistics were recorded.
func (m MemoryMetrics) Captured() bool {
	return m != MemoryMetrics{}
}
