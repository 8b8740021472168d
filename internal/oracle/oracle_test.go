package oracle

import (
	"math/big"
	"testing"

	blsfr "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	bnfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bn254P   = "30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001"
	bls377P  = "12ab655e9a2ca55660b44d1e5c37b00159aa76fed00000010a11800000000001"
	a0       = "14a9c2762b8ab0f20cb1096618a19a05d483d5405f405ef524524a41d90fff2f"
	b0       = "0aefa8fa0094edcbcd47dd061763108702bbdc704174a53b54507c8c28c69c77"
	bnProd   = "03191bdfb1ecefea0760e45312c3d552e95683d9459749c3b007050dc777e8ac"
	chain1k  = "288d8f838d8575326389c5fbec8452ba2c451ba01572146001762fd2e41546ea"
	chain2k  = "077ae088a17bd0fdf92315146022aa88a30c7f97fae2a9c8dfb86a3625db18fa"
	blsA     = "0b626d61fa9249f1cdb1ed842fb0ce3683f172e5127d698fdcb3c98cba5a3dcb"
	blsB     = "060746d8f3aa110102f1a1ab3d42df987110b2c030400f4c16da68ed2578bf10"
	blsProd  = "11632819f9df31ebfcb1f55ee017a35b6c55b71ed489094efef76714eb7e1236"
	radix256 = 256
)

func mustHex(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok, "bad hex %q", s)
	return v
}

func TestMontMulVectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		a, b, p, w string
	}{
		{"bn254", a0, b0, bn254P, bnProd},
		{"bls12-377", blsA, blsB, bls377P, blsProd},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MontMul(mustHex(t, tt.a), mustHex(t, tt.b), mustHex(t, tt.p), radix256)
			assert.Equal(t, 0, got.Cmp(mustHex(t, tt.w)), "got %x", got)
		})
	}
}

func TestChainVectors(t *testing.T) {
	t.Parallel()
	got, err := ChainHex(a0, b0, bn254P, radix256, 1024)
	require.NoError(t, err)
	assert.Equal(t, chain1k, got)

	got, err = ChainHex(a0, b0, bn254P, radix256, 2048)
	require.NoError(t, err)
	assert.Equal(t, chain2k, got)

	_, err = ChainHex("zz", b0, bn254P, radix256, 1)
	assert.Error(t, err)
}

func TestMontgomeryDomainRoundTrip(t *testing.T) {
	t.Parallel()
	p := mustHex(t, bn254P)
	x := mustHex(t, a0)
	assert.Equal(t, 0, FromMont(ToMont(x, p, radix256), p, radix256).Cmp(x))
	// MontMul(xR, yR) = xyR
	y := mustHex(t, b0)
	xy := new(big.Int).Mul(x, y)
	xy.Mod(xy, p)
	got := FromMont(MontMul(ToMont(x, p, radix256), ToMont(y, p, radix256), p, radix256), p, radix256)
	assert.Equal(t, 0, got.Cmp(xy))
}

// gnark-crypto's fr.Element is a Montgomery-form element over four 64-bit
// limbs, so multiplying raw limbs computes exactly a*b*2^-256 mod p.
func TestAgainstGnarkCrypto(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	bnP := mustHex(t, bn254P)
	blsP := mustHex(t, bls377P)

	properties.Property("bn254 fr.Mul matches MontMul", prop.ForAll(
		func(x, y [4]uint64) bool {
			a := reduceWords(x, bnP)
			b := reduceWords(y, bnP)
			ea, eb := bnfr.Element(a), bnfr.Element(b)
			var ez bnfr.Element
			ez.Mul(&ea, &eb)
			want := MontMul(wordsToBig(a), wordsToBig(b), bnP, radix256)
			return wordsToBig([4]uint64(ez)).Cmp(want) == 0
		},
		genWords(), genWords(),
	))
	properties.Property("bls12-377 fr.Mul matches MontMul", prop.ForAll(
		func(x, y [4]uint64) bool {
			a := reduceWords(x, blsP)
			b := reduceWords(y, blsP)
			ea, eb := blsfr.Element(a), blsfr.Element(b)
			var ez blsfr.Element
			ez.Mul(&ea, &eb)
			want := MontMul(wordsToBig(a), wordsToBig(b), blsP, radix256)
			return wordsToBig([4]uint64(ez)).Cmp(want) == 0
		},
		genWords(), genWords(),
	))

	properties.TestingRun(t)
}

func TestUint256AndGMPAgree(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	p := mustHex(t, bn254P)
	up, _ := uint256.FromBig(p)

	properties.Property("uint256 MulMod oracle agrees with math/big", prop.ForAll(
		func(x, y [4]uint64) bool {
			a := wordsToBig(reduceWords(x, p))
			b := wordsToBig(reduceWords(y, p))
			ua, _ := uint256.FromBig(a)
			ub, _ := uint256.FromBig(b)
			return Uint256MontMul(ua, ub, up, radix256).ToBig().Cmp(MontMul(a, b, p, radix256)) == 0
		},
		genWords(), genWords(),
	))
	properties.Property("GMP oracle agrees with math/big", prop.ForAll(
		func(x, y [4]uint64) bool {
			a := wordsToBig(reduceWords(x, p))
			b := wordsToBig(reduceWords(y, p))
			return GMPMontMul(a, b, p, radix256).Cmp(MontMul(a, b, p, radix256)) == 0
		},
		genWords(), genWords(),
	))

	properties.TestingRun(t)
	t.Logf("GMP compiled in: %v", GMPAvailable)
}

func genWords() gopter.Gen {
	return gen.SliceOfN(4, gen.UInt64()).Map(func(v []uint64) [4]uint64 {
		return [4]uint64{v[0], v[1], v[2], v[3]}
	})
}

func wordsToBig(w [4]uint64) *big.Int {
	u := uint256.Int(w)
	return u.ToBig()
}

func reduceWords(w [4]uint64, p *big.Int) [4]uint64 {
	v := wordsToBig(w)
	v.Mod(v, p)
	u, _ := uint256.FromBig(v)
	return [4]uint64(*u)
}

func BenchmarkMontMul(b *testing.B) {
	p := mustHex(b, bn254P)
	x, y := mustHex(b, a0), mustHex(b, b0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = MontMul(x, y, p, radix256)
	}
}
