//go:build !gmp || !cgo

package oracle

import "math/big"

// GMPAvailable reports whether the GMP-backed oracle was compiled in.
const GMPAvailable = false

// GMPMontMul falls back to math/big when built without the gmp tag.
func GMPMontMul(a, b, p *big.Int, rBits uint) *big.Int {
	return MontMul(a, b, p, rBits)
}
