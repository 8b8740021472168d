package bigint

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/montcalc/internal/limb"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bn254 = "30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001"

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()
	inputs := []string{
		bn254,
		"0000000000000000000000000000000000000000000000000000000000000000",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
	}
	for _, in := range inputs {
		in := in
		t.Run(in[:8], func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, in, ToHex(MustFromHex[uint32](in, limb.Shape8x32), limb.Shape8x32))
			assert.Equal(t, in, ToHex(MustFromHex[uint64](in, limb.Shape4x64), limb.Shape4x64))
			assert.Equal(t, in, ToHex(MustFromHex[uint64](in, limb.Shape5x51), limb.Shape5x51))
		})
	}
}

func TestHexUpperCaseIsAccepted(t *testing.T) {
	t.Parallel()
	x, err := FromHex[uint64](strings.ToUpper(bn254), limb.Shape4x64)
	require.NoError(t, err)
	assert.Equal(t, bn254, ToHex(x, limb.Shape4x64))
}

func TestHexErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		in       string
		shape    limb.Shape
		kind     ErrorKind
		sentinel error
		pos      int
	}{
		{"empty", "", limb.Shape4x64, KindMissing, ErrMissing, -1},
		{"short", "abc", limb.Shape4x64, KindLength, ErrLength, 3},
		{"long", bn254 + "0", limb.Shape8x32, KindLength, ErrLength, 65},
		{"bad digit", "3g" + bn254[2:], limb.Shape4x64, KindDigit, ErrDigit, 1},
		{"prefix", "0x" + bn254[2:], limb.Shape4x64, KindDigit, ErrDigit, 1},
		{"top bit for 5x51", "8" + strings.Repeat("0", 63), limb.Shape5x51, KindOverflow, ErrOverflow, -1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromHex[uint64](tt.in, tt.shape)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.pos, de.Pos)
			assert.Equal(t, -int(tt.kind), de.Kind.Code())
			assert.NotEmpty(t, de.Error())
		})
	}
}

func TestTopBitFitsFullWidthShapes(t *testing.T) {
	t.Parallel()
	in := "8" + strings.Repeat("0", 63)
	_, err := FromHex[uint32](in, limb.Shape8x32)
	assert.NoError(t, err)
	_, err = FromHex[uint64](in, limb.Shape4x64)
	assert.NoError(t, err)
}

func TestHexStringsAreIndependent(t *testing.T) {
	t.Parallel()
	x := MustFromHex[uint64](bn254, limb.Shape4x64)
	s1 := ToHex(x, limb.Shape4x64)
	s2 := ToHex(x, limb.Shape4x64)
	assert.Equal(t, s1, s2)
	b1 := []byte(s1)
	b1[0] = 'f'
	assert.Equal(t, bn254, s2)
}

func TestInterop(t *testing.T) {
	t.Parallel()
	want, _ := new(big.Int).SetString(bn254, 16)

	for _, shape := range []limb.Shape{limb.Shape4x64, limb.Shape5x51} {
		x := MustFromHex[uint64](bn254, shape)
		assert.Equal(t, 0, ToBig(x, shape).Cmp(want), shape.Name)

		y, err := FromBig[uint64](want, shape)
		require.NoError(t, err)
		assert.True(t, x.Equal(y), shape.Name)

		u := ToUint256(x, shape)
		assert.Equal(t, "0x"+strings.TrimLeft(bn254, "0"), u.Hex())
		z, err := FromUint256[uint64](u, shape)
		require.NoError(t, err)
		assert.True(t, x.Equal(z))
	}

	x32 := MustFromHex[uint32](bn254, limb.Shape8x32)
	assert.Equal(t, 0, ToBig(x32, limb.Shape8x32).Cmp(want))

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err := FromBig[uint64](tooBig, limb.Shape4x64)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = FromBig[uint64](big.NewInt(-1), limb.Shape4x64)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = FromUint256[uint64](new(uint256.Int).Lsh(uint256.NewInt(1), 255), limb.Shape5x51)
	assert.ErrorIs(t, err, ErrOverflow)
}

func FuzzHexRoundTrip(f *testing.F) {
	f.Add(bn254)
	f.Add(gtA)
	f.Add(strings.Repeat("f", 64))
	f.Add("xyz")

	f.Fuzz(func(t *testing.T, s string) {
		x, err := FromHex[uint32](s, limb.Shape8x32)
		if err != nil {
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("FromHex returned %T, want *DecodeError", err)
			}
			return
		}
		if got := ToHex(x, limb.Shape8x32); got != strings.ToLower(s) {
			t.Fatalf("round trip: %q -> %q", s, got)
		}
		y, err := FromHex[uint64](s, limb.Shape4x64)
		if err != nil {
			t.Fatalf("8x32 accepted %q but 4x64 rejected it: %v", s, err)
		}
		if ToBig(x, limb.Shape8x32).Cmp(ToBig(y, limb.Shape4x64)) != 0 {
			t.Fatalf("shapes disagree on %q", s)
		}
	})
}
