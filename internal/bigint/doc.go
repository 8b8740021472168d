// Package bigint holds fixed-width multi-precision integers made of limbs.
//
// Int is a value type: it is comparable, copies cheaply and never touches
// the heap, which lets the Montgomery kernels keep every intermediate on
// the stack. Only the comparison and subtraction needed by the reducers are
// provided. General addition, division and inversion live in math/big.
//
// The package also owns the text and interop codecs:
//
//   - FromHex / ToHex convert between a 64-digit big-endian hex string
//     and the limb representation of a given shape.
//   - FromBig / ToBig and FromUint256 / ToUint256 bridge to math/big and
//     github.com/holiman/uint256.
package bigint
