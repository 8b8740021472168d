package mont

import (
	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
)

// CIOSNoReduce is the classic CIOS loop. Each round adds a[i]*b into the
// accumulator, then adds m*p with m chosen so the low limb cancels, and
// shifts one limb down.
func CIOSNoReduce[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) Accumulator[W] {
	var acc Accumulator[W]
	ar := ctx.Arith()
	L := ctx.Limbs()
	n0 := ctx.N0()
	p := ctx.P().Array()
	av, bv := a.Array(), b.Array()
	t := acc.t[:L+2]

	for i := 0; i < L; i++ {
		var c W
		for j := 0; j < L; j++ {
			c, t[j] = ar.MulAddAdd(t[j], av[i], bv[j], c)
		}
		c, t[L] = ar.Add(t[L], c)
		t[L+1] = c

		m := ar.MulLo(t[0], n0)
		c, _ = ar.MulAdd(m, p[0], t[0])
		for j := 1; j < L; j++ {
			c, t[j-1] = ar.MulAddAdd(t[j], m, p[j], c)
		}
		c, t[L-1] = ar.Add(t[L], c)
		t[L] = t[L+1] + c
	}
	acc.n = L + 1
	return acc
}

// CIOS returns a*b*R^-1 mod p.
func CIOS[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
	return Reduce(CIOSNoReduce(a, b, ctx), ctx)
}

// Multiply is the reference multiplier every other kernel is checked
// against.
func Multiply[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
	return CIOS(a, b, ctx)
}

// MultiplyNoReduce is Multiply without the final subtraction.
func MultiplyNoReduce[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) Accumulator[W] {
	return CIOSNoReduce(a, b, ctx)
}
