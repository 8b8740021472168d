package engine

import (
	"errors"
	"fmt"

	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/mont"
	"github.com/agbru/montcalc/internal/simd"
)

// ErrUnsupported reports an algorithm that cannot run on a shape or
// modulus.
var ErrUnsupported = errors.New("algorithm not supported")

func check[W limb.Word, A limb.Arith[W]](alg Algorithm, ctx *field.Context[W, A]) error {
	if !Supports(alg, ctx.Shape()) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupported, alg, ctx.Shape())
	}
	if alg.NeedsSpareBit() && !ctx.HasSpareBit() {
		return fmt.Errorf("%w: %s needs a spare bit in the top limb of %s", ErrUnsupported, alg, ctx.Name())
	}
	return nil
}

// MultiplyNoReduce runs alg without the final subtraction. The result is
// below 2p.
func MultiplyNoReduce[W limb.Word, A limb.Arith[W]](alg Algorithm, a, b bigint.Int[W], ctx *field.Context[W, A]) (mont.Accumulator[W], error) {
	if err := check(alg, ctx); err != nil {
		return mont.Accumulator[W]{}, err
	}
	switch alg {
	case ACAR:
		return mont.CIOSNoReduce(a, b, ctx), nil
	case BH23:
		return mont.BH23NoReduce(a, b, ctx), nil
	case Domb:
		return mont.DombNoReduce(a, b, ctx), nil
	case BM17:
		return simd.BM17NoReduce(a, b, ctx).Accumulator(ctx.P(), ctx.Arith()), nil
	case SLGCK14:
		c32, ok := any(ctx).(*field.Context[uint32, limb.U32])
		if !ok {
			return mont.Accumulator[W]{}, fmt.Errorf("%w: slgck14 needs 32-bit limbs", ErrUnsupported)
		}
		acc := simd.SLGCK14NoReduce(any(a).(bigint.Int[uint32]), any(b).(bigint.Int[uint32]), c32)
		return any(acc).(mont.Accumulator[W]), nil
	case CarryLast:
		return simd.CarryLastNoReduce(a, b, ctx), nil
	}
	return mont.Accumulator[W]{}, fmt.Errorf("%w: %s", ErrUnsupported, alg)
}

// Multiply runs alg and returns a*b*R^-1 mod p.
func Multiply[W limb.Word, A limb.Arith[W]](alg Algorithm, a, b bigint.Int[W], ctx *field.Context[W, A]) (bigint.Int[W], error) {
	k, err := Kernel(alg, ctx)
	if err != nil {
		return bigint.Int[W]{}, err
	}
	return k(a, b, ctx), nil
}

// KernelFunc is a fully reducing multiplier bound to one algorithm.
type KernelFunc[W limb.Word, A limb.Arith[W]] func(a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W]

// Kernel resolves alg to a function once, so chains do not pay for
// dispatch on every step.
func Kernel[W limb.Word, A limb.Arith[W]](alg Algorithm, ctx *field.Context[W, A]) (KernelFunc[W, A], error) {
	if err := check(alg, ctx); err != nil {
		return nil, err
	}
	switch alg {
	case ACAR:
		return mont.CIOS[W, A], nil
	case BH23:
		return mont.BH23[W, A], nil
	case Domb:
		return mont.Domb[W, A], nil
	case BM17:
		return simd.BM17[W, A], nil
	case SLGCK14:
		if _, ok := any(ctx).(*field.Context[uint32, limb.U32]); !ok {
			return nil, fmt.Errorf("%w: slgck14 needs 32-bit limbs", ErrUnsupported)
		}
		return func(a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W] {
			c32 := any(ctx).(*field.Context[uint32, limb.U32])
			r := simd.SLGCK14(any(a).(bigint.Int[uint32]), any(b).(bigint.Int[uint32]), c32)
			return any(r).(bigint.Int[W])
		}, nil
	case CarryLast:
		return simd.CarryLast[W, A], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, alg)
}
