// Package engine binds Montgomery kernels to moduli and limb shapes and
// exposes them behind a single hex-in, hex-out interface, so the CLI can
// run and compare any mix of algorithms and layouts.
package engine

import (
	"context"
	"fmt"

	"github.com/agbru/montcalc/internal/bigint"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/progress"
)

//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks github.com/agbru/montcalc/internal/engine Engine

// Engine is one algorithm on one shape for one modulus. Operands and
// results are 64-digit hex strings; operands must be below the modulus.
type Engine interface {
	// Name is "<algorithm>/<shape>", unique within a factory.
	Name() string
	Algorithm() Algorithm
	Shape() limb.Shape
	// Field is the name of the modulus.
	Field() string
	// Multiply returns a*b*R^-1 mod p.
	Multiply(a, b string) (string, error)
	// MultiplyNoReduce returns the value before the final subtraction,
	// which may be in [p, 2p). It is rendered over 64 digits and fails
	// when the value needs more than 256 bits.
	MultiplyNoReduce(a, b string) (string, error)
	// Chain runs (x, y) <- (y, Multiply(x, y)) for steps iterations from
	// (a, b) and returns the final y. ctx is checked between steps.
	Chain(ctx context.Context, a, b string, steps int, report progress.ProgressCallback) (string, error)
}

type engine[W limb.Word, A limb.Arith[W]] struct {
	alg    Algorithm
	ctx    *field.Context[W, A]
	kernel KernelFunc[W, A]
}

// New binds alg to ctx.
func New[W limb.Word, A limb.Arith[W]](alg Algorithm, ctx *field.Context[W, A]) (Engine, error) {
	k, err := Kernel(alg, ctx)
	if err != nil {
		return nil, err
	}
	return &engine[W, A]{alg: alg, ctx: ctx, kernel: k}, nil
}

func (e *engine[W, A]) Name() string         { return string(e.alg) + "/" + e.ctx.Shape().Name }
func (e *engine[W, A]) Algorithm() Algorithm { return e.alg }
func (e *engine[W, A]) Shape() limb.Shape    { return e.ctx.Shape() }
func (e *engine[W, A]) Field() string        { return e.ctx.Name() }

func (e *engine[W, A]) operand(name, s string) (bigint.Int[W], error) {
	x, err := bigint.FromHex[W](s, e.ctx.Shape())
	if err != nil {
		return x, fmt.Errorf("operand %s: %w", name, err)
	}
	if !x.Less(e.ctx.P()) {
		return x, apperrors.ValidationError{Field: name, Message: "operand must be below the modulus"}
	}
	return x, nil
}

func (e *engine[W, A]) operands(a, b string) (x, y bigint.Int[W], err error) {
	if x, err = e.operand("a", a); err != nil {
		return x, y, err
	}
	y, err = e.operand("b", b)
	return x, y, err
}

func (e *engine[W, A]) Multiply(a, b string) (string, error) {
	x, y, err := e.operands(a, b)
	if err != nil {
		return "", err
	}
	return bigint.ToHex(e.kernel(x, y, e.ctx), e.ctx.Shape()), nil
}

func (e *engine[W, A]) MultiplyNoReduce(a, b string) (string, error) {
	x, y, err := e.operands(a, b)
	if err != nil {
		return "", err
	}
	acc, err := MultiplyNoReduce(e.alg, x, y, e.ctx)
	if err != nil {
		return "", err
	}
	shape := e.ctx.Shape()
	L := shape.Limbs
	limbs := acc.Limbs()
	// 5x51 leaves one bit of the 64-digit encoding above the L limbs
	if limbs[L]>>(256-shape.TotalBits()) != 0 {
		return "", fmt.Errorf("unreduced result of %s does not fit in 64 hex digits", e.Name())
	}
	if limbs[L] == 0 {
		limbs = limbs[:L]
	}
	return bigint.ToHex(bigint.FromLimbs(limbs...), shape), nil
}

func (e *engine[W, A]) Chain(ctx context.Context, a, b string, steps int, report progress.ProgressCallback) (string, error) {
	x, y, err := e.operands(a, b)
	if err != nil {
		return "", err
	}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		x, y = y, e.kernel(x, y, e.ctx)
		progress.ReportStepProgress(report, i, steps)
	}
	return bigint.ToHex(y, e.ctx.Shape()), nil
}

func (e *engine[W, A]) String() string {
	return fmt.Sprintf("%s (%s, %s)", e.Name(), e.alg.Description(), e.ctx.Name())
}
