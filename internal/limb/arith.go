package limb

import "math"

// Word is the storage type of a single limb.
type Word interface {
	~uint32 | ~uint64
}

// Arith is the limb-level arithmetic a kernel needs. Implementations are
// zero-sized value types so that generic instantiation inlines every call.
//
// All inputs are assumed to be normalized (strictly below 2^Bits()), except
// where a method documents otherwise. Every returned low half is normalized.
type Arith[W Word] interface {
	// Bits is the number of significant bits per limb.
	Bits() uint
	// Mask is 2^Bits() - 1.
	Mask() W
	// Add returns a + b split into (carry, low limb).
	Add(a, b W) (hi, lo W)
	// MulAdd returns a*b + c split into (high part, low limb).
	MulAdd(a, b, c W) (hi, lo W)
	// MulAddAdd returns a + b*c + d split into (high part, low limb).
	MulAddAdd(a, b, c, d W) (hi, lo W)
	// SubBorrow returns a - b - borrow, and the borrow out (0 or 1).
	SubBorrow(a, b, borrow W) (diff, borrowOut W)
	// MulLo returns a*b mod 2^Bits().
	MulLo(a, b W) W
}

// U32 implements Arith over 32-bit limbs using native 64-bit products.
type U32 struct{}

func (U32) Bits() uint   { return 32 }
func (U32) Mask() uint32 { return math.MaxUint32 }

func (U32) Add(a, b uint32) (hi, lo uint32) {
	s := uint64(a) + uint64(b)
	return uint32(s >> 32), uint32(s)
}

func (U32) MulAdd(a, b, c uint32) (hi, lo uint32) {
	s := uint64(a)*uint64(b) + uint64(c)
	return uint32(s >> 32), uint32(s)
}

// MulAddAdd cannot overflow: (2^32-1)^2 + 2(2^32-1) = 2^64 - 1.
func (U32) MulAddAdd(a, b, c, d uint32) (hi, lo uint32) {
	s := uint64(a) + uint64(b)*uint64(c) + uint64(d)
	return uint32(s >> 32), uint32(s)
}

func (U32) SubBorrow(a, b, borrow uint32) (diff, borrowOut uint32) {
	d := uint64(a) - uint64(b) - uint64(borrow)
	return uint32(d), uint32(d>>63) & 1
}

func (U32) MulLo(a, b uint32) uint32 { return a * b }

// Inverse returns x^-1 mod 2^Bits() for odd x, by Newton iteration in
// 64-bit arithmetic: each step doubles the number of correct low bits,
// starting from the 3 bits that x*x == 1 (mod 8) already provides.
func Inverse[W Word, A Arith[W]](x W, arith A) W {
	v := uint64(x)
	inv := v
	for i := 0; i < 5; i++ {
		inv *= 2 - v*inv
	}
	return W(inv) & arith.Mask()
}

// NegInv returns -x^-1 mod 2^Bits() for odd x.
func NegInv[W Word, A Arith[W]](x W, arith A) W {
	return (-Inverse(x, arith)) & arith.Mask()
}
