package mont

import (
	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
)

// DombNoReduce interleaves the multiplication and reduction rows: car2
// carries a[j]*b[i] and car1 carries m*p[j], both through the same pass
// over j. The two carries meet in limb L-1.
func DombNoReduce[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) Accumulator[W] {
	var acc Accumulator[W]
	ar := ctx.Arith()
	L := ctx.Limbs()
	n0 := ctx.N0()
	p := ctx.P().Array()
	av, bv := a.Array(), b.Array()
	t := acc.t[:L+1]

	for i := 0; i < L; i++ {
		car2, r0 := ar.MulAdd(av[0], bv[i], t[0])
		m := ar.MulLo(r0, n0)
		car1, _ := ar.MulAdd(m, p[0], r0)
		for j := 1; j < L; j++ {
			car2, t[j] = ar.MulAddAdd(t[j], av[j], bv[i], car2)
			car1, t[j-1] = ar.MulAddAdd(t[j], m, p[j], car1)
		}
		_, t[L-1] = ar.Add(car1, car2)
	}
	acc.n = L + 1
	return acc
}

// Domb returns a*b*R^-1 mod p. ctx must have a spare bit.
func Domb[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
	return Reduce(DombNoReduce(a, b, ctx), ctx)
}
