package limb

import (
	"math"
	"math/bits"
)

// Native64 implements Arith over 64-bit limbs with math/bits, which the
// compiler lowers to single multiply and add-with-carry instructions on
// most 64-bit targets.
type Native64 struct{}

func (Native64) Bits() uint   { return 64 }
func (Native64) Mask() uint64 { return math.MaxUint64 }

func (Native64) Add(a, b uint64) (hi, lo uint64) {
	lo, hi = bits.Add64(a, b, 0)
	return hi, lo
}

func (Native64) MulAdd(a, b, c uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	return hi + carry, lo
}

func (Native64) MulAddAdd(a, b, c, d uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(b, c)
	lo, carry = bits.Add64(lo, a, 0)
	hi += carry
	lo, carry = bits.Add64(lo, d, 0)
	return hi + carry, lo
}

func (Native64) SubBorrow(a, b, borrow uint64) (diff, borrowOut uint64) {
	return bits.Sub64(a, b, borrow)
}

func (Native64) MulLo(a, b uint64) uint64 { return a * b }

// Portable64 implements Arith over 64-bit limbs without relying on
// double-width hardware multiplication. Products are assembled from four
// 32x32 partial products.
type Portable64 struct{}

const mask32 = 1<<32 - 1

func (Portable64) Bits() uint   { return 64 }
func (Portable64) Mask() uint64 { return math.MaxUint64 }

func (Portable64) Add(a, b uint64) (hi, lo uint64) {
	lo = a + b
	hi = ((a & b) | ((a | b) &^ lo)) >> 63
	return hi, lo
}

func (p Portable64) MulAdd(a, b, c uint64) (hi, lo uint64) {
	hi, lo = mul64(a, b)
	carry, lo := p.Add(lo, c)
	return hi + carry, lo
}

func (p Portable64) MulAddAdd(a, b, c, d uint64) (hi, lo uint64) {
	hi, lo = mul64(b, c)
	carry, lo := p.Add(lo, a)
	hi += carry
	carry, lo = p.Add(lo, d)
	return hi + carry, lo
}

func (Portable64) SubBorrow(a, b, borrow uint64) (diff, borrowOut uint64) {
	diff = a - b - borrow
	borrowOut = ((^a & b) | (^(a ^ b) & diff)) >> 63
	return diff, borrowOut
}

func (Portable64) MulLo(a, b uint64) uint64 { return a * b }

// mul64 is the schoolbook 64x64->128 product over 32-bit halves.
func mul64(x, y uint64) (hi, lo uint64) {
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32
	w0 := x0 * y0
	t := x1*y0 + w0>>32
	w1 := t & mask32
	w2 := t >> 32
	w1 += x0 * y1
	hi = x1*y1 + w2 + w1>>32
	lo = x * y
	return hi, lo
}
