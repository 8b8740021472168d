package simd

import (
	"fmt"

	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/mont"
)

// columns holds the nine accumulator columns of the transposed 8x32
// kernel: res[0] = (t0, t2), res[1] = (t1, t3), res[2] = (t4, t6),
// res[3] = (t5, t7), and t8 on its own.
type columns struct {
	res [4]U64x2
	t8  uint64
}

// accumulate adds s*v into the columns. v is a transposed operand, so the
// four lane multiplies produce the products of limbs (0,4), (2,6), (1,5)
// and (3,7); TRN1/TRN2 then regroup low and high halves by column parity.
func (c *columns) accumulate(s uint32, v [4]U32x2) {
	ss := Dup(s)
	r0 := Mull(ss, v[0]).AsU32x4() // lo0 hi0 lo4 hi4
	r1 := Mull(ss, v[1]).AsU32x4() // lo2 hi2 lo6 hi6
	r2 := Mull(ss, v[2]).AsU32x4() // lo1 hi1 lo5 hi5
	r3 := Mull(ss, v[3]).AsU32x4() // lo3 hi3 lo7 hi7

	even := Trn1(r0, r1)   // lo0 lo2 lo4 lo6
	evenHi := Trn2(r0, r1) // hi0 hi2 hi4 hi6
	odd := Trn1(r2, r3)    // lo1 lo3 lo5 lo7
	oddHi := Trn2(r2, r3)  // hi1 hi3 hi5 hi7

	// hi(k) lands in column k+1
	shifted := Ext(U32x4{}, oddHi, 3) // 0 hi1 hi3 hi5

	c.res[0] = c.res[0].Add(WideningAdd(even.Low(), shifted.Low()))
	c.res[1] = c.res[1].Add(WideningAdd(odd.Low(), evenHi.Low()))
	c.res[2] = c.res[2].Add(WideningAdd(even.High(), shifted.High()))
	c.res[3] = c.res[3].Add(WideningAdd(odd.High(), evenHi.High()))
	c.t8 += uint64(oddHi[3])
}

// carry0 moves the bits of column 0 above 32 into column 1.
func (c *columns) carry0() {
	carry := c.res[0].Low() >> 32
	c.res[0] = c.res[0].And(MakeU64x2(^uint64(0), lo32))
	c.res[1] = c.res[1].Add(MakeU64x2(0, carry))
}

// shift drops column 0 and moves every other column down by one.
func (c *columns) shift() {
	res02, res13, res46, res57 := c.res[0], c.res[1], c.res[2], c.res[3]
	c.res[0] = res13
	c.res[1] = Ext64(res02, res46, 1) // t2, t4
	c.res[2] = res57
	c.res[3] = Ext64(res46, U64x2{c.t8, 0}, 1) // t6, t8
	c.t8 = 0
}

func (c *columns) flatten() [9]uint64 {
	return [9]uint64{
		c.res[0][0], c.res[1][0], c.res[0][1], c.res[1][1],
		c.res[2][0], c.res[3][0], c.res[2][1], c.res[3][1],
		c.t8,
	}
}

// SLGCK14NoReduce is the transposed NEON kernel. It only serves the 8x32
// shape and panics for any other limb count.
func SLGCK14NoReduce(a, b bigint.Int[uint32], ctx *field.Context[uint32, limb.U32]) mont.Accumulator[uint32] {
	if ctx.Limbs() != 8 {
		panic(fmt.Sprintf("simd: SLGCK14 needs 8 limbs, got %d", ctx.Limbs()))
	}
	pArr, bArr, aArr := ctx.P().Array(), b.Array(), a.Array()
	var pv, bv [8]uint32
	copy(pv[:], pArr[:8])
	copy(bv[:], bArr[:8])
	tb, tp := Transpose(bv), Transpose(pv)
	n0 := ctx.N0()

	var c columns
	for i := 0; i < 8; i++ {
		c.accumulate(aArr[i], tb)
		c.carry0()
		m := uint32(c.res[0].Low()) * n0
		c.accumulate(m, tp)
		c.carry0()
		c.shift()
	}

	t := c.flatten()
	CarryPropagate(t[:], 32)
	var out [9]uint32
	for i := range out {
		out[i] = uint32(t[i])
	}
	return mont.NewAccumulator(out[:]...)
}

// SLGCK14 returns a*b*R^-1 mod p for the 8x32 shape.
func SLGCK14(a, b bigint.Int[uint32], ctx *field.Context[uint32, limb.U32]) bigint.Int[uint32] {
	return mont.Reduce(SLGCK14NoReduce(a, b, ctx), ctx)
}
