package mont

import (
	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
)

// Accumulator is the transient state of one multiplication: up to L+2
// limbs. Only the low L+1 limbs are meaningful once a kernel returns.
type Accumulator[W limb.Word] struct {
	t [bigint.MaxLimbs + 2]W
	n int
}

// NewAccumulator wraps limbs, least significant first. At most
// bigint.MaxLimbs+1 limbs are accepted.
func NewAccumulator[W limb.Word](limbs ...W) Accumulator[W] {
	var acc Accumulator[W]
	acc.n = copy(acc.t[:bigint.MaxLimbs+1], limbs)
	return acc
}

// Len is the number of meaningful limbs (L+1).
func (a Accumulator[W]) Len() int { return a.n }

// Limb returns limb i.
func (a Accumulator[W]) Limb(i int) W { return a.t[i] }

// Limbs returns a copy of the meaningful limbs.
func (a Accumulator[W]) Limbs() []W {
	out := make([]W, a.n)
	copy(out, a.t[:a.n])
	return out
}

// Reduce returns t mod p for t < 2p: t - p when t >= p, else the low L
// limbs of t. The result is always below p.
func Reduce[W limb.Word, A limb.Arith[W]](t Accumulator[W], ctx *field.Context[W, A]) bigint.Int[W] {
	L := ctx.Limbs()
	// p widened to L+1 limbs; the extra limb is zero
	p := ctx.P().Array()
	var wide [bigint.MaxLimbs + 1]W
	copy(wide[:L], p[:L])

	if !bigint.GreaterOrEqual(t.t[:L+1], wide[:L+1]) {
		return bigint.FromLimbs(t.t[:L]...)
	}
	var diff [bigint.MaxLimbs]W
	bigint.SubLimbs(diff[:L], t.t[:L], p[:L], ctx.Arith())
	return bigint.FromLimbs(diff[:L]...)
}
