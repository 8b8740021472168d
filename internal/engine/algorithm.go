package engine

import (
	"fmt"
	"strings"

	"github.com/agbru/montcalc/internal/limb"
)

// Algorithm names a Montgomery multiplication kernel.
type Algorithm string

const (
	ACAR      Algorithm = "acar"
	BH23      Algorithm = "bh23"
	Domb      Algorithm = "domb"
	BM17      Algorithm = "bm17"
	SLGCK14   Algorithm = "slgck14"
	CarryLast Algorithm = "carrylast"
)

// Algorithms lists every kernel in presentation order.
func Algorithms() []Algorithm {
	return []Algorithm{ACAR, BH23, Domb, BM17, SLGCK14, CarryLast}
}

// ParseAlgorithm resolves a kernel by name.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

// Description is a one-line human label.
func (a Algorithm) Description() string {
	switch a {
	case ACAR:
		return "Classic CIOS (Acar)"
	case BH23:
		return "Optimised CIOS, L+1 limbs (BH23)"
	case Domb:
		return "Interleaved carry chains (Domb)"
	case BM17:
		return "Bos-Montgomery lane split (BM17)"
	case SLGCK14:
		return "Transposed NEON columns (SLGCK14)"
	case CarryLast:
		return "Lazy columns, single carry pass"
	default:
		return string(a)
	}
}

// Vector reports whether the kernel uses the lane formulation.
func (a Algorithm) Vector() bool {
	return a == BM17 || a == SLGCK14 || a == CarryLast
}

// NeedsSpareBit reports whether the kernel folds its top carry and so
// requires a modulus whose top limb leaves a spare bit.
func (a Algorithm) NeedsSpareBit() bool {
	return a == BH23 || a == Domb
}

// Supports reports whether a kernel is defined for a shape, independently
// of the modulus.
func Supports(a Algorithm, shape limb.Shape) bool {
	switch a {
	case ACAR, BH23, Domb, BM17:
		return true
	case SLGCK14:
		return shape == limb.Shape8x32
	case CarryLast:
		return shape.Narrow()
	default:
		return false
	}
}
