package metrics

import "runtime"

// MemorySnapshot holds a point-in-time reading of the Go runtime allocator.
type MemorySnapshot struct {
	HeapAlloc  uint64 // bytes of live heap objects
	TotalAlloc uint64 // cumulative bytes allocated
	Mallocs    uint64 // cumulative heap objects allocated
	Sys        uint64 // total bytes obtained from the OS
	NumGC      uint32 // completed GC cycles
}

// MemoryDelta is the allocation activity between two snapshots.
type MemoryDelta struct {
	Bytes   uint64
	Objects uint64
	GCs     uint32
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

// Since returns the allocations made between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Bytes:   s.TotalAlloc - before.TotalAlloc,
		Objects: s.Mallocs - before.Mallocs,
		GCs:     s.NumGC - before.NumGC,
	}
}

// PerOp divides the delta by ops, for allocations per multiplication.
func (d MemoryDelta) PerOp(ops int) float64 {
	if ops <= 0 {
		return 0
	}
	return float64(d.Objects) / float64(ops)
}
