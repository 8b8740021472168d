package format

import (
	"testing"
	"time"
)

// reportsPerChain is how many progress values a chain emits: one every
// steps/64 multiplications.
const reportsPerChain = 64

func stepFraction(k int) float64 { return float64(k) / reportsPerChain }

func TestProgressStateFollowsChainReports(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(1)
	for k := 1; k <= reportsPerChain; k++ {
		ps.Update(0, stepFraction(k))
		if got := ps.CalculateAverage(); got != stepFraction(k) {
			t.Fatalf("after report %d: average = %v, want %v", k, got, stepFraction(k))
		}
	}
}

func TestProgressStateAveragesEngines(t *testing.T) {
	t.Parallel()
	// three engines at different points of the same 1024-step chain
	ps := NewProgressState(3)
	ps.Update(0, stepFraction(16))
	ps.Update(1, stepFraction(32))
	ps.Update(2, stepFraction(64))

	if got, want := ps.CalculateAverage(), (0.25+0.5+1.0)/3; got != want {
		t.Errorf("average = %v, want %v", got, want)
	}

	// out of range indices and values
	ps.Update(3, 1)
	ps.Update(-1, 1)
	ps.Update(0, stepFraction(65))
	if got, want := ps.CalculateAverage(), (1.0+0.5+1.0)/3; got != want {
		t.Errorf("after clamping: average = %v, want %v", got, want)
	}
}

func TestProgressStateWithoutEngines(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -2} {
		ps := NewProgressState(n)
		ps.Update(0, stepFraction(8))
		if got := ps.CalculateAverage(); got != 0 {
			t.Errorf("NewProgressState(%d): average = %v, want 0", n, got)
		}
	}
}

func TestUpdateWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before any report = %v, want 0", eta)
	}
	p.startTime = time.Now().Add(-2 * time.Second)

	avg, _ := p.UpdateWithETA(0, stepFraction(32))
	if avg != 0.25 {
		t.Errorf("average = %v, want 0.25", avg)
	}
	// both engines halfway after 2s: 0.25/s, 2s left
	avg, eta := p.UpdateWithETA(1, stepFraction(32))
	if avg != 0.5 {
		t.Errorf("average = %v, want 0.5", avg)
	}
	if eta < 1800*time.Millisecond || eta > 2200*time.Millisecond {
		t.Errorf("ETA = %v, want about 2s", eta)
	}

	p.UpdateWithETA(0, stepFraction(64))
	if avg, eta := p.UpdateWithETA(1, stepFraction(64)); avg != 1 || eta != 0 {
		t.Errorf("finished chains: average %v, ETA %v", avg, eta)
	}
}

func TestETAIsCapped(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.startTime = time.Now().Add(-48 * time.Hour)
	if _, eta := p.UpdateWithETA(0, stepFraction(1)); eta != maxETA {
		t.Errorf("ETA = %v, want the %v cap", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{300 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{3 * time.Minute, "3m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{2 * time.Hour, "2h"},
		{time.Hour + 15*time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{stepFraction(0), 8, "░░░░░░░░"},
		{stepFraction(16), 8, "██░░░░░░"},
		{stepFraction(33), 8, "████░░░░"},
		{stepFraction(64), 8, "████████"},
		{1.5, 4, "████"},
		{-0.5, 4, "░░░░"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress float64
		eta      time.Duration
		want     string
	}{
		{"starting", 0, 0, "[░░░░░░░░]   0.00% ETA: calculating..."},
		{"halfway", stepFraction(32), 30 * time.Second, "[████░░░░]  50.00% ETA: 30s"},
		{"done", stepFraction(64), 0, "[████████] 100.00% ETA: done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatProgressBarWithETA(tt.progress, tt.eta, 8); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
