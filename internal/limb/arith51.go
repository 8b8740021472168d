package limb

import "math/bits"

// U51 implements Arith over 51-bit limbs stored in uint64. Five of them
// cover 255 bits.
//
// The high part returned by MulAdd and MulAddAdd is the 128-bit result
// shifted right by 51, which fits in 64 bits as long as the result stays
// below 2^115.
type U51 struct{}

// Mask51 is the limb mask of the 5x51 layout.
const Mask51 = 1<<51 - 1

func (U51) Bits() uint   { return 51 }
func (U51) Mask() uint64 { return Mask51 }

func (U51) Add(a, b uint64) (hi, lo uint64) {
	s := a + b
	return s >> 51, s & Mask51
}

func (U51) MulAdd(a, b, c uint64) (hi, lo uint64) {
	h, l := bits.Mul64(a, b)
	l, carry := bits.Add64(l, c, 0)
	return split51(h+carry, l)
}

func (U51) MulAddAdd(a, b, c, d uint64) (hi, lo uint64) {
	h, l := bits.Mul64(b, c)
	l, carry := bits.Add64(l, a, 0)
	h += carry
	l, carry = bits.Add64(l, d, 0)
	return split51(h+carry, l)
}

func (U51) SubBorrow(a, b, borrow uint64) (diff, borrowOut uint64) {
	d := a - b - borrow
	return d & Mask51, d >> 63
}

func (U51) MulLo(a, b uint64) uint64 { return (a * b) & Mask51 }

func split51(h, l uint64) (hi, lo uint64) {
	return h<<13 | l>>51, l & Mask51
}
