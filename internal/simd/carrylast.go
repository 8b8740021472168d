package simd

import (
	"fmt"

	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/mont"
)

// CarryPropagate normalizes columns to bits-wide limbs in one pass from
// the least significant column up. The carry out of the last column is
// dropped.
func CarryPropagate(x []uint64, bits uint) {
	mask := uint64(1)<<bits - 1
	for i := 0; i < len(x)-1; i++ {
		x[i+1] += x[i] >> bits
		x[i] &= mask
	}
	x[len(x)-1] &= mask
}

// addRow adds s*v into 64-bit columns without normalizing: the low half of
// each product goes to column j and the high half to column j+1.
func addRow[W limb.Word, A limb.Arith[W]](ar A, cols []uint64, s W, v []W) {
	for j, vj := range v {
		hi, lo := ar.MulAdd(s, vj, 0)
		cols[j] += uint64(lo)
		cols[j+1] += uint64(hi)
	}
}

// CarryLastNoReduce accumulates in 64-bit columns and resolves carries
// once at the end. Only column 0 is normalized inside the loop, because
// the reduction factor m depends on it. Shapes wider than 52 bits leave
// no headroom in the columns and are rejected with a panic.
func CarryLastNoReduce[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) mont.Accumulator[W] {
	ar := ctx.Arith()
	if !ctx.Shape().Narrow() {
		panic(fmt.Sprintf("simd: carry-last needs a narrow shape, got %s", ctx.Shape()))
	}
	L := ctx.Limbs()
	bits := ar.Bits()
	mask := uint64(ar.Mask())
	n0 := ctx.N0()
	pArr, aArr, bArr := ctx.P().Array(), a.Array(), b.Array()
	p, bv := pArr[:L], bArr[:L]

	var cols [bigint.MaxLimbs + 1]uint64
	t := cols[:L+1]
	for i := 0; i < L; i++ {
		addRow(ar, t, aArr[i], bv)
		t[1] += t[0] >> bits
		t[0] &= mask

		m := ar.MulLo(W(t[0]), n0)
		addRow(ar, t, m, p)
		t[1] += t[0] >> bits

		copy(t[:L], t[1:])
		t[L] = 0
	}

	CarryPropagate(t, bits)
	var out [bigint.MaxLimbs + 1]W
	for i := range t {
		out[i] = W(t[i])
	}
	return mont.NewAccumulator(out[:L+1]...)
}

// CarryLast returns a*b*R^-1 mod p for narrow shapes.
func CarryLast[W limb.Word, A limb.Arith[W]](a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
	return mont.Reduce(CarryLastNoReduce(a, b, ctx), ctx)
}
