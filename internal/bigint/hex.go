package bigint

import (
	"encoding/hex"
	"fmt"
	"math/bits"

	"github.com/agbru/montcalc/internal/limb"
)

// HexDigits is the exact length of every hex operand: 256 bits.
const HexDigits = 64

// words256 is a 256-bit value as four 64-bit words, least significant first.
type words256 [4]uint64

func parseWords(s string) (words256, error) {
	var w words256
	if s == "" {
		return w, &DecodeError{Kind: KindMissing, Pos: -1}
	}
	if len(s) != HexDigits {
		return w, &DecodeError{Kind: KindLength, Pos: len(s), Input: s}
	}
	for i := 0; i < HexDigits; i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return w, &DecodeError{Kind: KindDigit, Pos: i, Input: s}
		}
		// digit i (from the left) is nibble 63-i of the value
		n := HexDigits - 1 - i
		w[n/16] |= uint64(d) << (4 * (n % 16))
	}
	return w, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func wordBits[W limb.Word]() uint {
	var zero W
	return uint(bits.Len64(uint64(^zero)))
}

func checkShape[W limb.Word](shape limb.Shape) {
	if shape.Bits > wordBits[W]() || shape.Limbs > MaxLimbs {
		panic(fmt.Sprintf("bigint: shape %s does not fit %d-bit words", shape, wordBits[W]()))
	}
}

// unpack spreads a 256-bit value over the limbs of shape. It fails when
// bits above shape.TotalBits() are set.
func unpack[W limb.Word](w words256, shape limb.Shape) (Int[W], bool) {
	checkShape[W](shape)
	x := New[W](shape.Limbs)
	mask := shape.Mask()
	for i := 0; i < shape.Limbs; i++ {
		x.v[i] = W(extract(w, uint(i)*shape.Bits, shape.Bits) & mask)
	}
	if total := shape.TotalBits(); total < 256 && extract(w, total, 256-total) != 0 {
		return x, false
	}
	return x, true
}

// extract returns n <= 64 bits of w starting at bit offset off.
func extract(w words256, off, n uint) uint64 {
	if off >= 256 {
		return 0
	}
	idx, sh := off/64, off%64
	v := w[idx] >> sh
	if sh != 0 && idx+1 < 4 {
		v |= w[idx+1] << (64 - sh)
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	return v
}

func pack[W limb.Word](x Int[W], shape limb.Shape) words256 {
	var w words256
	for i := 0; i < x.n; i++ {
		off := uint(i) * shape.Bits
		v := uint64(x.v[i])
		idx, sh := off/64, off%64
		if idx >= 4 {
			break
		}
		w[idx] |= v << sh
		if sh != 0 && idx+1 < 4 {
			w[idx+1] |= v >> (64 - sh)
		}
	}
	return w
}

// FromHex parses a 64-digit big-endian hex string into limbs of shape.
// Upper and lower case digits are accepted. Errors are *DecodeError.
func FromHex[W limb.Word](s string, shape limb.Shape) (Int[W], error) {
	w, err := parseWords(s)
	if err != nil {
		return Int[W]{}, err
	}
	x, ok := unpack[W](w, shape)
	if !ok {
		return Int[W]{}, &DecodeError{Kind: KindOverflow, Pos: -1, Input: s}
	}
	return x, nil
}

// MustFromHex is FromHex for constants known to be valid.
func MustFromHex[W limb.Word](s string, shape limb.Shape) Int[W] {
	x, err := FromHex[W](s, shape)
	if err != nil {
		panic(err)
	}
	return x
}

// ToHex renders x as 64 lower-case hex digits, most significant first.
func ToHex[W limb.Word](x Int[W], shape limb.Shape) string {
	w := pack(x, shape)
	var buf [32]byte
	for i := 0; i < 4; i++ {
		v := w[3-i]
		for j := 0; j < 8; j++ {
			buf[i*8+j] = byte(v >> (56 - 8*j))
		}
	}
	return hex.EncodeToString(buf[:])
}
