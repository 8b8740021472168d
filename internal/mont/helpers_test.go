package mont

import (
	"math/big"
	"testing"

	"github.com/agbru/montcalc/internal/bigint"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/oracle"
)

const (
	a0      = "14a9c2762b8ab0f20cb1096618a19a05d483d5405f405ef524524a41d90fff2f"
	b0      = "0aefa8fa0094edcbcd47dd061763108702bbdc704174a53b54507c8c28c69c77"
	bnProd  = "03191bdfb1ecefea0760e45312c3d552e95683d9459749c3b007050dc777e8ac"
	chain1k = "288d8f838d8575326389c5fbec8452ba2c451ba01572146001762fd2e41546ea"
	blsA    = "0b626d61fa9249f1cdb1ed842fb0ce3683f172e5127d698fdcb3c98cba5a3dcb"
	blsB    = "060746d8f3aa110102f1a1ab3d42df987110b2c030400f4c16da68ed2578bf10"
	blsProd = "11632819f9df31ebfcb1f55ee017a35b6c55b71ed489094efef76714eb7e1236"
)

type kernel[W limb.Word, A limb.Arith[W]] func(a, b bigint.Int[W], ctx *field.Context[W, A]) bigint.Int[W]

type namedKernel[W limb.Word, A limb.Arith[W]] struct {
	name string
	fn   kernel[W, A]
}

func scalarKernels[W limb.Word, A limb.Arith[W]]() []namedKernel[W, A] {
	return []namedKernel[W, A]{
		{"cios", CIOS[W, A]},
		{"bh23", BH23[W, A]},
		{"domb", Domb[W, A]},
	}
}

// kernelsFor drops the kernels that need a spare bit when ctx has none.
func kernelsFor[W limb.Word, A limb.Arith[W]](ctx *field.Context[W, A]) []namedKernel[W, A] {
	if ctx.HasSpareBit() {
		return scalarKernels[W, A]()
	}
	return []namedKernel[W, A]{{"cios", CIOS[W, A]}}
}

func mustContext[W limb.Word, A limb.Arith[W]](t testing.TB, pHex string, ar A, shape limb.Shape) *field.Context[W, A] {
	t.Helper()
	ctx, err := field.NewFromHex[W](shape.Name, pHex, ar, shape)
	if err != nil {
		t.Fatalf("context %s: %v", shape, err)
	}
	return ctx
}

func chain[W limb.Word, A limb.Arith[W]](k kernel[W, A], a, b bigint.Int[W], ctx *field.Context[W, A], steps int) bigint.Int[W] {
	x, y := a, b
	for i := 0; i < steps; i++ {
		x, y = y, k(x, y, ctx)
	}
	return y
}

// expectMontMul computes the oracle result for hex operands.
func expectMontMul[W limb.Word, A limb.Arith[W]](ctx *field.Context[W, A], a, b bigint.Int[W]) bigint.Int[W] {
	shape := ctx.Shape()
	want := oracle.MontMul(bigint.ToBig(a, shape), bigint.ToBig(b, shape), ctx.Modulus(), shape.TotalBits())
	out, err := bigint.FromBig[W](want, shape)
	if err != nil {
		panic(err)
	}
	return out
}

func fromBig[W limb.Word](v *big.Int, shape limb.Shape) bigint.Int[W] {
	x, err := bigint.FromBig[W](v, shape)
	if err != nil {
		panic(err)
	}
	return x
}

// reduced maps four random words to a value below p.
func reduced(w [4]uint64, p *big.Int) *big.Int {
	v := new(big.Int)
	for i := 3; i >= 0; i-- {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(w[i]))
	}
	return v.Mod(v, p)
}
