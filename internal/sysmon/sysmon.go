// Package sysmon samples CPU and memory usage of the host and of the montcalc
// process while chains are running.
package sysmon

import (
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats is one snapshot. Percentages are in [0, 100].
type Stats struct {
	CPUPercent  float64 // host-wide
	MemPercent  float64 // host-wide
	ProcCPU     float64 // this process, may exceed 100 on several cores
	ProcRSS     uint64  // this process, bytes
	LogicalCPUs int
}

// Sampler reads Stats and keeps the last Capacity CPU readings for
// sparklines. Zero values are reported for anything gopsutil cannot read.
type Sampler struct {
	mu       sync.Mutex
	proc     *process.Process
	history  []float64
	capacity int
}

// NewSampler returns a sampler remembering capacity CPU readings.
func NewSampler(capacity int) *Sampler {
	if capacity < 1 {
		capacity = 1
	}
	s := &Sampler{capacity: capacity}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

// Sample collects a snapshot. Host CPU uses interval 0, i.e. the delta since
// the previous call.
func (s *Sampler) Sample() Stats {
	st := Sample()
	if s.proc != nil {
		if pct, err := s.proc.Percent(0); err == nil {
			st.ProcCPU = pct
		}
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			st.ProcRSS = mi.RSS
		}
	}
	s.mu.Lock()
	s.history = append(s.history, st.CPUPercent)
	if len(s.history) > s.capacity {
		s.history = s.history[len(s.history)-s.capacity:]
	}
	s.mu.Unlock()
	return st
}

// History returns a copy of the remembered host CPU readings, oldest first.
func (s *Sampler) History() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.history...)
}

// Sample collects host-wide figures only.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	return s
}
