package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/montcalc/internal/errors"
)

const namespace = "montcalc"

// Chain outcome label values.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// Recorder collects montcalc metrics in its own registry. All methods are
// safe for concurrent use.
type Recorder struct {
	registry        *prometheus.Registry
	chainDuration   *prometheus.HistogramVec
	chains          *prometheus.CounterVec
	multiplications *prometheus.CounterVec
	nsPerOp         *prometheus.GaugeVec
	mismatches      *prometheus.CounterVec
	heap            prometheus.GaugeFunc
}

// NewRecorder registers the montcalc collectors, the Go runtime collector
// and a live heap gauge fed by mem.
func NewRecorder(mem *MemoryCollector) *Recorder {
	if mem == nil {
		mem = NewMemoryCollector()
	}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		chainDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chain_duration_seconds",
			Help:      "Wall time of one multiplication chain.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"algorithm", "shape"}),
		chains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chains_total",
			Help:      "Chains run, by engine and outcome.",
		}, []string{"engine", "status"}),
		multiplications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "multiplications_total",
			Help:      "Montgomery multiplications completed.",
		}, []string{"engine"}),
		nsPerOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ns_per_multiplication",
			Help:      "Mean nanoseconds per multiplication in the last chain.",
		}, []string{"engine"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mismatches_total",
			Help:      "Result groups whose engines disagreed.",
		}, []string{"shape"}),
		heap: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Bytes of live heap objects.",
		}, func() float64 { return float64(mem.Snapshot().HeapAlloc) }),
	}
	r.registry.MustRegister(
		r.chainDuration, r.chains, r.multiplications, r.nsPerOp, r.mismatches, r.heap,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveChain records one finished chain. Failed chains only count
// towards chains_total.
func (r *Recorder) ObserveChain(engine, algorithm, shape string, steps int, d time.Duration, err error) {
	status := StatusOK
	switch {
	case err == nil:
	case apperrors.IsContextError(err):
		status = StatusCanceled
	default:
		status = StatusError
	}
	r.chains.WithLabelValues(engine, status).Inc()
	if err != nil {
		return
	}
	r.chainDuration.WithLabelValues(algorithm, shape).Observe(d.Seconds())
	r.multiplications.WithLabelValues(engine).Add(float64(steps))
	if steps > 0 {
		r.nsPerOp.WithLabelValues(engine).Set(float64(d.Nanoseconds()) / float64(steps))
	}
}

// ObserveMismatch counts a disagreement within a shape group.
func (r *Recorder) ObserveMismatch(shape string) {
	r.mismatches.WithLabelValues(shape).Inc()
}

// WriteTextfile writes every metric to path in the text exposition format,
// replacing the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return errors.New("metrics: empty textfile path")
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
