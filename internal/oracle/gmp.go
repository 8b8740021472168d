//go:build gmp && cgo

package oracle

import (
	"math/big"

	"github.com/ncw/gmp"
)

// GMPAvailable reports whether the GMP-backed oracle was compiled in.
const GMPAvailable = true

// GMPMontMul is MontMul computed with libgmp.
func GMPMontMul(a, b, p *big.Int, rBits uint) *big.Int {
	ga := new(gmp.Int).SetBytes(a.Bytes())
	gb := new(gmp.Int).SetBytes(b.Bytes())
	gp := new(gmp.Int).SetBytes(p.Bytes())

	r := new(gmp.Int).Lsh(gmp.NewInt(1), rBits)
	r.Mod(r, gp)
	rInv := new(gmp.Int).ModInverse(r, gp)

	z := new(gmp.Int).Mul(ga, gb)
	z.Mul(z, rInv)
	z.Mod(z, gp)
	return new(big.Int).SetBytes(z.Bytes())
}
