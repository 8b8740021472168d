package bigint

import (
	"math/big"

	"github.com/agbru/montcalc/internal/limb"
	"github.com/holiman/uint256"
)

// ToBig returns the value of x as a *big.Int.
func ToBig[W limb.Word](x Int[W], shape limb.Shape) *big.Int {
	return ToUint256(x, shape).ToBig()
}

// FromBig converts a non-negative big.Int below 2^shape.TotalBits().
func FromBig[W limb.Word](v *big.Int, shape limb.Shape) (Int[W], error) {
	u, overflow := uint256.FromBig(v)
	if overflow || v.Sign() < 0 {
		return Int[W]{}, &DecodeError{Kind: KindOverflow, Pos: -1}
	}
	return FromUint256[W](u, shape)
}

// ToUint256 packs x into a uint256.Int.
func ToUint256[W limb.Word](x Int[W], shape limb.Shape) *uint256.Int {
	w := pack(x, shape)
	u := uint256.Int(w)
	return &u
}

// FromUint256 spreads a uint256.Int over the limbs of shape.
func FromUint256[W limb.Word](u *uint256.Int, shape limb.Shape) (Int[W], error) {
	x, ok := unpack[W](words256(*u), shape)
	if !ok {
		return Int[W]{}, &DecodeError{Kind: KindOverflow, Pos: -1}
	}
	return x, nil
}
