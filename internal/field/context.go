// Package field holds the immutable per-modulus state shared by every
// Montgomery kernel: the modulus, its limb layout and the precomputed
// inverses n0 and mu.
package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/agbru/montcalc/internal/bigint"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/limb"
)

// Validation failures reported by New. They are wrapped in an
// apperrors.ValidationError and match with errors.Is.
var (
	ErrEvenModulus     = errors.New("modulus must be odd")
	ErrLimbCount       = errors.New("modulus limb count does not match the shape")
	ErrLimbRange       = errors.New("modulus limb exceeds the limb width")
	ErrModulusTooSmall = errors.New("modulus must be greater than 1")
	ErrShapeMismatch   = errors.New("arithmetic backend does not match the shape")
)

// Context is a validated modulus ready for Montgomery multiplication.
// It is never mutated after New returns and may be shared freely between
// goroutines.
type Context[W limb.Word, A limb.Arith[W]] struct {
	name  string
	p     bigint.Int[W]
	n0    W
	mu    W
	arith A
	shape limb.Shape
	spare bool
}

// New validates p against shape and precomputes the inverses.
func New[W limb.Word, A limb.Arith[W]](name string, p bigint.Int[W], arith A, shape limb.Shape) (*Context[W, A], error) {
	if err := validate(p, arith, shape); err != nil {
		return nil, err
	}
	mask := arith.Mask()
	top := p.Limb(shape.Limbs - 1)
	return &Context[W, A]{
		name:  name,
		p:     p,
		n0:    limb.NegInv(p.Limb(0), arith),
		mu:    limb.Inverse(p.Limb(0), arith),
		arith: arith,
		shape: shape,
		spare: top < mask>>1,
	}, nil
}

// NewFromHex decodes a 64-digit hex modulus and calls New.
func NewFromHex[W limb.Word, A limb.Arith[W]](name, hex string, arith A, shape limb.Shape) (*Context[W, A], error) {
	p, err := bigint.FromHex[W](hex, shape)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus %s: %w", name, err)
	}
	return New(name, p, arith, shape)
}

func invalid(cause error, format string, a ...any) error {
	return apperrors.ValidationError{
		Field:   "modulus",
		Message: fmt.Sprintf(format, a...),
		Cause:   cause,
	}
}

func validate[W limb.Word, A limb.Arith[W]](p bigint.Int[W], arith A, shape limb.Shape) error {
	if arith.Bits() != shape.Bits {
		return invalid(ErrShapeMismatch, "%d-bit arithmetic cannot serve shape %s", arith.Bits(), shape)
	}
	if p.Len() != shape.Limbs {
		return invalid(ErrLimbCount, "got %d limbs, shape %s needs %d", p.Len(), shape, shape.Limbs)
	}
	mask := arith.Mask()
	for i := 0; i < p.Len(); i++ {
		if p.Limb(i) > mask {
			return invalid(ErrLimbRange, "limb %d is %#x, above %d bits", i, p.Limb(i), shape.Bits)
		}
	}
	if p.Limb(0)&1 == 0 {
		return invalid(ErrEvenModulus, "%s is even", p)
	}
	if p.Limb(0) == 1 && p.SetLimb(0, 0).IsZero() {
		return invalid(ErrModulusTooSmall, "modulus is 1")
	}
	return nil
}

// Name returns the label given at construction.
func (c *Context[W, A]) Name() string { return c.name }

// P returns the modulus.
func (c *Context[W, A]) P() bigint.Int[W] { return c.p }

// N0 returns -p^-1 mod 2^W, the CIOS reduction constant.
func (c *Context[W, A]) N0() W { return c.n0 }

// Mu returns +p^-1 mod 2^W, the constant of the Bos-Montgomery lane split.
func (c *Context[W, A]) Mu() W { return c.mu }

// Arith returns the limb backend.
func (c *Context[W, A]) Arith() A { return c.arith }

// Shape returns the limb layout.
func (c *Context[W, A]) Shape() limb.Shape { return c.shape }

// Limbs returns L.
func (c *Context[W, A]) Limbs() int { return c.shape.Limbs }

// HasSpareBit reports whether the top limb of p is below 2^(W-1) - 1.
// The BH23 and Domb kernels fold their top carry into limb L-1 and are
// only exact under this condition.
func (c *Context[W, A]) HasSpareBit() bool { return c.spare }

// Modulus returns p as a *big.Int.
func (c *Context[W, A]) Modulus() *big.Int { return bigint.ToBig(c.p, c.shape) }

// R returns the Montgomery radix 2^(L*W).
func (c *Context[W, A]) R() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), c.shape.TotalBits())
}

func (c *Context[W, A]) String() string {
	return fmt.Sprintf("%s/%s", c.name, c.shape)
}
