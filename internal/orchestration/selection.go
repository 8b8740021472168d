package orchestration

import (
	"slices"

	"github.com/agbru/montcalc/internal/config"
	"github.com/agbru/montcalc/internal/engine"
	"github.com/agbru/montcalc/internal/limb"
)

// GetEnginesToRun returns the factory's engines matching the algorithm and
// shape selection of cfg, in the factory's sorted order.
func GetEnginesToRun(cfg config.AppConfig, factory engine.Factory) []engine.Engine {
	algos := cfg.SelectedAlgorithms()
	shapes, err := cfg.SelectedShapes()
	if err != nil {
		return nil
	}
	var engines []engine.Engine
	for _, name := range factory.List() {
		e, err := factory.Get(name)
		if err != nil {
			continue
		}
		if algos != nil && !slices.Contains(algos, string(e.Algorithm())) {
			continue
		}
		if !slices.ContainsFunc(shapes, func(s limb.Shape) bool { return s.Name == e.Shape().Name }) {
			continue
		}
		engines = append(engines, e)
	}
	return engines
}
