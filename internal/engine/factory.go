package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
)

// Factory hands out engines by name.
type Factory interface {
	// List returns the registered engine names, sorted.
	List() []string
	// Get returns the engine registered under name.
	Get(name string) (Engine, error)
	// GetAll returns a copy of the registry.
	GetAll() map[string]Engine
}

// ErrNotFound is returned by Get for an unknown engine name.
var ErrNotFound = errors.New("engine not found")

// DefaultFactory is a concurrency-safe registry of engines for one field.
type DefaultFactory struct {
	mu      sync.RWMutex
	field   string
	engines map[string]Engine
}

// NewFactory returns an empty registry for field.
func NewFactory(field string) *DefaultFactory {
	return &DefaultFactory{field: field, engines: make(map[string]Engine)}
}

// NewDefaultFactory registers every supported (algorithm, shape) pair for
// the named preset or modulus. Pairs the modulus cannot support (for
// example BH23 without a spare bit) are skipped.
func NewDefaultFactory(fieldName, modulusHex string, shapes []limb.Shape) (*DefaultFactory, error) {
	f := NewFactory(fieldName)
	for _, shape := range shapes {
		for _, alg := range Algorithms() {
			if !Supports(alg, shape) {
				continue
			}
			e, err := Build(alg, shape, fieldName, modulusHex)
			if errors.Is(err, ErrUnsupported) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if err := f.Register(e); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// Register adds e under e.Name(). Names must be unique.
func (f *DefaultFactory) Register(e Engine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.engines[e.Name()]; dup {
		return fmt.Errorf("engine %q already registered", e.Name())
	}
	f.engines[e.Name()] = e
	return nil
}

// Field returns the field name the factory was built for.
func (f *DefaultFactory) Field() string { return f.field }

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.engines))
	for name := range f.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

func (f *DefaultFactory) GetAll() map[string]Engine {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]Engine, len(f.engines))
	for k, v := range f.engines {
		out[k] = v
	}
	return out
}

// Build constructs one engine, choosing the limb backend from the shape.
// A modulus too wide for the shape is reported as ErrUnsupported.
func Build(alg Algorithm, shape limb.Shape, fieldName, modulusHex string) (Engine, error) {
	var (
		e   Engine
		err error
	)
	switch shape {
	case limb.Shape8x32:
		e, err = build[uint32](alg, shape, fieldName, modulusHex, limb.U32{})
	case limb.Shape4x64:
		e, err = build[uint64](alg, shape, fieldName, modulusHex, limb.U64{})
	case limb.Shape5x51:
		e, err = build[uint64](alg, shape, fieldName, modulusHex, limb.U51{})
	default:
		return nil, fmt.Errorf("%w: shape %s", ErrUnsupported, shape)
	}
	if errors.Is(err, bigint.ErrOverflow) {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return e, err
}

func build[W limb.Word, A limb.Arith[W]](alg Algorithm, shape limb.Shape, fieldName, modulusHex string, ar A) (Engine, error) {
	ctx, err := field.NewFromHex[W](fieldName, modulusHex, ar, shape)
	if err != nil {
		return nil, err
	}
	return New(alg, ctx)
}
