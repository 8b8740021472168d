// Package oracle computes Montgomery products with general-purpose
// arbitrary-precision arithmetic. It shares no code with the limb kernels
// and is used to verify them.
package oracle

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// MontMul returns a*b*2^-rBits mod p. p must be odd.
func MontMul(a, b, p *big.Int, rBits uint) *big.Int {
	rInv := radixInverse(p, rBits)
	z := new(big.Int).Mul(a, b)
	z.Mul(z, rInv)
	return z.Mod(z, p)
}

// Chain runs (x, y) <- (y, MontMul(x, y)) for steps iterations and
// returns the final y.
func Chain(a, b, p *big.Int, rBits uint, steps int) *big.Int {
	rInv := radixInverse(p, rBits)
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for i := 0; i < steps; i++ {
		z := new(big.Int).Mul(x, y)
		z.Mul(z, rInv)
		z.Mod(z, p)
		x, y = y, z
	}
	return y
}

// ChainHex is Chain over 64-digit hex strings, with a 64-digit result.
func ChainHex(aHex, bHex, pHex string, rBits uint, steps int) (string, error) {
	a, b, p, err := parseAll(aHex, bHex, pHex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%064x", Chain(a, b, p, rBits, steps)), nil
}

func parseAll(hexes ...string) (a, b, p *big.Int, err error) {
	vals := make([]*big.Int, len(hexes))
	for i, h := range hexes {
		v, ok := new(big.Int).SetString(h, 16)
		if !ok {
			return nil, nil, nil, fmt.Errorf("oracle: invalid hex %q", h)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func radixInverse(p *big.Int, rBits uint) *big.Int {
	r := new(big.Int).Lsh(big.NewInt(1), rBits)
	r.Mod(r, p)
	inv := r.ModInverse(r, p)
	if inv == nil {
		panic(fmt.Sprintf("oracle: 2^%d has no inverse modulo %x", rBits, p))
	}
	return inv
}

// Uint256MontMul is MontMul computed with holiman/uint256 MulMod. It only
// handles rBits <= 256 and moduli that fit 256 bits.
func Uint256MontMul(a, b, p *uint256.Int, rBits uint) *uint256.Int {
	rInv, overflow := uint256.FromBig(radixInverse(p.ToBig(), rBits))
	if overflow {
		panic("oracle: radix inverse overflows 256 bits")
	}
	z := new(uint256.Int).MulMod(a, b, p)
	return z.MulMod(z, rInv, p)
}

// ToMont maps a into the Montgomery domain: a*2^rBits mod p.
func ToMont(a, p *big.Int, rBits uint) *big.Int {
	z := new(big.Int).Lsh(a, rBits)
	return z.Mod(z, p)
}

// FromMont maps a out of the Montgomery domain.
func FromMont(a, p *big.Int, rBits uint) *big.Int {
	return MontMul(a, big.NewInt(1), p, rBits)
}
