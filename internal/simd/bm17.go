package simd

import (
	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/mont"
)

// LanePair is the unreduced output of the Bos-Montgomery kernel: the
// product lane D and the reduction lane E, both below p. The Montgomery
// product is D - E mod p.
type LanePair[W limb.Word] struct {
	D, E bigint.Int[W]
}

// lane is one 2-lane register over any limb width: slot 1 carries the D
// (a*b) computation and slot 0 the E (q*p) computation.
type lane[W limb.Word] [2]W

// madd computes t + x*y + acc per lane, returning the carries and the low
// limbs.
func madd[W limb.Word, A limb.Arith[W]](ar A, t, x, y, acc lane[W]) (carry, low lane[W]) {
	carry[0], low[0] = ar.MulAddAdd(t[0], x[0], y[0], acc[0])
	carry[1], low[1] = ar.MulAddAdd(t[1], x[1], y[1], acc[1])
	return carry, low
}

// BM17NoReduce runs both lanes for L rounds. In round j, q is chosen so
// that d[0] + a[j]*b[0] and e[0] + q*p[0] agree modulo 2^W, which lets
// both lanes drop their lowest limb without tracking it. 32-bit limbs run
// on U32x2 registers.
func BM17NoReduce[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) LanePair[W] {
	if c32, ok := any(ctx).(*field.Context[uint32, limb.U32]); ok {
		pair := bm17Lanes32(any(a).(bigint.Int[uint32]), any(b).(bigint.Int[uint32]), c32)
		return any(pair).(LanePair[W])
	}
	return bm17Scalar(a, b, ctx)
}

func bm17Scalar[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) LanePair[W] {
	ar := ctx.Arith()
	L := ctx.Limbs()
	mask := ar.Mask()
	mu := ctx.Mu()
	p := ctx.P().Array()
	av, bv := a.Array(), b.Array()
	var de [bigint.MaxLimbs]lane[W]

	muB0 := ar.MulLo(mu, bv[0])
	for j := 0; j < L; j++ {
		q := (ar.MulLo(muB0, av[j]) + ar.MulLo(mu, (de[0][1]-de[0][0])&mask)) & mask
		x := lane[W]{q, av[j]}

		t, _ := madd(ar, lane[W]{}, x, lane[W]{p[0], bv[0]}, de[0])
		for i := 1; i < L; i++ {
			t, de[i-1] = madd(ar, t, x, lane[W]{p[i], bv[i]}, de[i])
		}
		de[L-1] = t
	}

	d, e := bigint.New[W](L), bigint.New[W](L)
	for i := 0; i < L; i++ {
		d = d.SetLimb(i, de[i][1])
		e = e.SetLimb(i, de[i][0])
	}
	return LanePair[W]{D: d, E: e}
}

// maddLanes is madd on registers: t + x*y + acc per lane through Mlal,
// narrowed back into carry and low halves. The sum cannot overflow 64 bits.
func maddLanes(t, x, y, acc U32x2) (carry, low U32x2) {
	sum := Mlal(WideningAdd(t, acc), x, y)
	return sum.Shr(32).Narrow(), sum.Narrow()
}

func bm17Lanes32(a, b bigint.Int[uint32], ctx *field.Context[uint32, limb.U32]) LanePair[uint32] {
	L := ctx.Limbs()
	mu := ctx.Mu()
	p := ctx.P().Array()
	av, bv := a.Array(), b.Array()

	// lane 0 multiplies by p for E, lane 1 by b for D
	var pb, de [bigint.MaxLimbs]U32x2
	for i := 0; i < L; i++ {
		pb[i] = MakeU32x2(bv[i], p[i])
	}

	muB0 := mu * bv[0]
	for j := 0; j < L; j++ {
		q := muB0*av[j] + mu*(de[0][1]-de[0][0])
		x := MakeU32x2(av[j], q)

		t, _ := maddLanes(U32x2{}, x, pb[0], de[0])
		for i := 1; i < L; i++ {
			t, de[i-1] = maddLanes(t, x, pb[i], de[i])
		}
		de[L-1] = t
	}

	d, e := bigint.New[uint32](L), bigint.New[uint32](L)
	for i := 0; i < L; i++ {
		d = d.SetLimb(i, de[i][1])
		e = e.SetLimb(i, de[i][0])
	}
	return LanePair[uint32]{D: d, E: e}
}

// Recombine returns D - E mod p, in [0, p).
func Recombine[W limb.Word, A limb.Arith[W]](pair LanePair[W], ctx *field.Context[W, A]) bigint.Int[W] {
	ar := ctx.Arith()
	if pair.D.GreaterThan(pair.E) {
		return bigint.Sub(pair.D, pair.E, ar)
	}
	return bigint.Sub(ctx.P(), bigint.Sub(pair.E, pair.D, ar), ar)
}

// Accumulator converts the pair into the equivalent unreduced scalar
// accumulator D + (p - E), which is below 2p.
func (lp LanePair[W]) Accumulator(p bigint.Int[W], ar limb.Arith[W]) mont.Accumulator[W] {
	L := p.Len()
	pe := bigint.Sub(p, lp.E, ar)
	var sum [bigint.MaxLimbs + 1]W
	var c W
	for i := 0; i < L; i++ {
		var c1, c2 W
		c1, sum[i] = ar.Add(lp.D.Limb(i), pe.Limb(i))
		c2, sum[i] = ar.Add(sum[i], c)
		c = c1 + c2
	}
	sum[L] = c
	return mont.NewAccumulator(sum[:L+1]...)
}

// BM17 returns a*b*R^-1 mod p.
func BM17[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
	return Recombine(BM17NoReduce(a, b, ctx), ctx)
}
