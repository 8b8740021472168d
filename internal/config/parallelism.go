package config

import "runtime"

// Parallelism resolution chain (highest priority first):
//   1. --parallelism
//   2. MONTCALC_PARALLELISM
//   3. EstimateParallelism (this file)

// ApplyDefaultParallelism fills in Parallelism when it was left at zero.
func ApplyDefaultParallelism(cfg AppConfig) AppConfig {
	if cfg.Parallelism == 0 {
		cfg.Parallelism = EstimateParallelism()
	}
	return cfg
}

// EstimateParallelism returns how many engines to run at once: one per
// schedulable CPU, since every chain is a single CPU-bound goroutine.
func EstimateParallelism() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
