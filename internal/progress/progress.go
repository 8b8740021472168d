// Package progress carries progress notifications from running engines to
// whatever is displaying them (CLI spinner, TUI dashboard, logs).
package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// ProgressUpdate is one notification from the engine at EngineIndex.
// Value is the completed fraction in [0, 1].
type ProgressUpdate struct {
	EngineIndex int
	Value       float64
}

// ProgressCallback receives the completed fraction of a single run.
type ProgressCallback func(progress float64)

// ProgressObserver is notified of progress for any engine it is registered
// with.
type ProgressObserver interface {
	Update(index int, progress float64)
}

// ProgressSubject fans progress out to registered observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer.
func (s *ProgressSubject) Register(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Unregister removes an observer if present.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Freeze snapshots the current observers into a callback bound to
// index. Observers registered later are not notified by it.
func (s *ProgressSubject) Freeze(index int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(p float64) {
		for _, o := range snapshot {
			o.Update(index, p)
		}
	}
}

// ChannelObserver forwards updates to a channel without ever blocking the
// engine; updates that do not fit the buffer are dropped.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver wraps ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

func (o *ChannelObserver) Update(index int, p float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{EngineIndex: index, Value: p}:
	default:
	}
}

// LoggingObserver logs progress at debug level, at most once per
// threshold step of progress per engine.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	mu        sync.Mutex
	last      map[int]float64
}

// NewLoggingObserver logs through logger every time an engine advances by
// at least threshold.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	return &LoggingObserver{logger: logger, threshold: threshold, last: make(map[int]float64)}
}

func (o *LoggingObserver) Update(index int, p float64) {
	o.mu.Lock()
	prev, seen := o.last[index]
	if seen && p-prev < o.threshold && p < 1 {
		o.mu.Unlock()
		return
	}
	o.last[index] = p
	o.mu.Unlock()

	o.logger.Debug().Int("engine", index).Float64("progress", p).Msg("chain progress")
}

// NoOpObserver ignores every update.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

func (NoOpObserver) Update(int, float64) {}

// ReportInterval is the number of progress reports a chain emits over its
// full length.
const ReportInterval = 64

// ReportStepProgress calls cb when step completes one of the
// ReportInterval slices of a run of total steps, and always on the last
// step. It is a no-op for a nil callback.
func ReportStepProgress(cb ProgressCallback, step, total int) {
	if cb == nil || total <= 0 {
		return
	}
	done := step + 1
	every := total / ReportInterval
	if every == 0 {
		every = 1
	}
	if done%every == 0 || done == total {
		cb(float64(done) / float64(total))
	}
}
