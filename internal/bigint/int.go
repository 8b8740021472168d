package bigint

import (
	"fmt"

	"github.com/agbru/montcalc/internal/limb"
)

// MaxLimbs is the widest limb count any supported shape uses.
const MaxLimbs = 8

// Int is an unsigned integer of n limbs, least significant limb first.
type Int[W limb.Word] struct {
	v [MaxLimbs]W
	n int
}

// New returns a zero value of n limbs. It panics if n is out of range.
func New[W limb.Word](n int) Int[W] {
	if n < 1 || n > MaxLimbs {
		panic(fmt.Sprintf("bigint: limb count %d out of range [1,%d]", n, MaxLimbs))
	}
	return Int[W]{n: n}
}

// FromLimbs builds an Int from limbs given least significant first.
func FromLimbs[W limb.Word](limbs ...W) Int[W] {
	x := New[W](len(limbs))
	copy(x.v[:], limbs)
	return x
}

// Len returns the number of limbs.
func (x Int[W]) Len() int { return x.n }

// Limb returns limb i.
func (x Int[W]) Limb(i int) W { return x.v[i] }

// Limbs returns a copy of the limbs.
func (x Int[W]) Limbs() []W {
	out := make([]W, x.n)
	copy(out, x.v[:x.n])
	return out
}

// Array exposes the backing array. Limbs at index >= Len() are zero.
func (x Int[W]) Array() [MaxLimbs]W { return x.v }

// SetLimb returns a copy of x with limb i replaced.
func (x Int[W]) SetLimb(i int, w W) Int[W] {
	x.v[i] = w
	return x
}

// IsZero reports whether every limb is zero.
func (x Int[W]) IsZero() bool {
	for i := 0; i < x.n; i++ {
		if x.v[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether x and y have the same width and limbs.
func (x Int[W]) Equal(y Int[W]) bool { return x == y }

// GreaterThan reports x >= y. Equal values compare as greater; the
// reducers rely on this to subtract p from a value equal to p.
func (x Int[W]) GreaterThan(y Int[W]) bool {
	n := max(x.n, y.n)
	return GreaterOrEqual(x.v[:n], y.v[:n])
}

// Less reports x < y.
func (x Int[W]) Less(y Int[W]) bool { return !x.GreaterThan(y) }

func (x Int[W]) String() string {
	return fmt.Sprintf("%#x", x.v[:x.n])
}

// GreaterOrEqual compares two limb vectors of equal length from the most
// significant limb down, treating equality as greater.
func GreaterOrEqual[W limb.Word](a, b []W) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] < b[i] {
			return false
		}
		if a[i] > b[i] {
			return true
		}
	}
	return true
}

// SubLimbs sets dst = a - b over len(dst) limbs and returns the final
// borrow.
func SubLimbs[W limb.Word, A limb.Arith[W]](dst, a, b []W, arith A) W {
	var borrow W
	for i := range dst {
		dst[i], borrow = arith.SubBorrow(a[i], b[i], borrow)
	}
	return borrow
}

// Sub returns x - y over x.Len() limbs. The final borrow is discarded, so
// callers must ensure x >= y when an exact result is needed.
func Sub[W limb.Word, A limb.Arith[W]](x, y Int[W], arith A) Int[W] {
	z := Int[W]{n: x.n}
	SubLimbs(z.v[:x.n], x.v[:x.n], y.v[:x.n], arith)
	return z
}

// Sub is the method form of the package-level Sub, for callers holding an
// Arith interface value.
func (x Int[W]) Sub(y Int[W], arith limb.Arith[W]) Int[W] {
	return Sub(x, y, arith)
}
