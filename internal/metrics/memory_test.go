package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

var sink []byte

func TestMemoryCollector_Since(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	d := after.Since(before)
	if d.Bytes < 1<<20 {
		t.Errorf("delta bytes = %d, want at least 1 MiB", d.Bytes)
	}
	if d.Objects == 0 {
		t.Error("delta objects should be > 0")
	}
}

func TestMemoryDelta_PerOp(t *testing.T) {
	t.Parallel()
	d := MemoryDelta{Objects: 10}
	if got := d.PerOp(4); got != 2.5 {
		t.Errorf("PerOp(4) = %v, want 2.5", got)
	}
	if got := d.PerOp(0); got != 0 {
		t.Errorf("PerOp(0) = %v, want 0", got)
	}
}
