package mont

import (
	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
)

// BH23NoReduce scans b in the outer loop and keeps only L+1 limbs of
// state. The top carry of the reduction row is folded straight into limb
// L-1, which cannot overflow while ctx.HasSpareBit() holds.
func BH23NoReduce[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) Accumulator[W] {
	var acc Accumulator[W]
	ar := ctx.Arith()
	L := ctx.Limbs()
	n0 := ctx.N0()
	p := ctx.P().Array()
	av, bv := a.Array(), b.Array()
	t := acc.t[:L+1]

	for i := 0; i < L; i++ {
		var c W
		for j := 0; j < L; j++ {
			c, t[j] = ar.MulAddAdd(t[j], av[j], bv[i], c)
		}
		t[L] = c

		m := ar.MulLo(t[0], n0)
		c, _ = ar.MulAdd(m, p[0], t[0])
		for j := 1; j < L; j++ {
			c, t[j-1] = ar.MulAddAdd(t[j], m, p[j], c)
		}
		_, t[L-1] = ar.Add(t[L], c)
	}
	t[L] = 0
	acc.n = L + 1
	return acc
}

// BH23 returns a*b*R^-1 mod p. ctx must have a spare bit.
func BH23[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
	return Reduce(BH23NoReduce(a, b, ctx), ctx)
}
