package simd

// U32x2 is a 64-bit register of two 32-bit lanes. Lane 0 is the low half.
type U32x2 [2]uint32

// U64x2 is a 128-bit register of two 64-bit lanes.
type U64x2 [2]uint64

// U32x4 is a 128-bit register of four 32-bit lanes.
type U32x4 [4]uint32

const lo32 = 1<<32 - 1

// MakeU32x2 builds a register from its high and low lane, in the argument
// order of the vcreate idiom.
func MakeU32x2(hi, lo uint32) U32x2 { return U32x2{lo, hi} }

// MakeU64x2 builds a register from its high and low lane.
func MakeU64x2(hi, lo uint64) U64x2 { return U64x2{lo, hi} }

// Dup broadcasts x to both lanes.
func Dup(x uint32) U32x2 { return U32x2{x, x} }

// Mull is the widening lane multiply.
func Mull(a, b U32x2) U64x2 {
	return U64x2{uint64(a[0]) * uint64(b[0]), uint64(a[1]) * uint64(b[1])}
}

// Mlal is the widening multiply-accumulate: acc + a*b per lane.
func Mlal(acc U64x2, a, b U32x2) U64x2 {
	return U64x2{acc[0] + uint64(a[0])*uint64(b[0]), acc[1] + uint64(a[1])*uint64(b[1])}
}

// WideningAdd adds two U32x2 into 64-bit lanes.
func WideningAdd(a, b U32x2) U64x2 {
	return U64x2{uint64(a[0]) + uint64(b[0]), uint64(a[1]) + uint64(b[1])}
}

func (v U64x2) Add(w U64x2) U64x2 { return U64x2{v[0] + w[0], v[1] + w[1]} }
func (v U64x2) And(w U64x2) U64x2 { return U64x2{v[0] & w[0], v[1] & w[1]} }
func (v U64x2) Shr(s uint) U64x2  { return U64x2{v[0] >> s, v[1] >> s} }

// Low returns lane 0.
func (v U64x2) Low() uint64 { return v[0] }

// Narrow keeps the low 32 bits of each lane (VMOVN).
func (v U64x2) Narrow() U32x2 { return U32x2{uint32(v[0]), uint32(v[1])} }

// AsU32x4 reinterprets the register as four 32-bit lanes.
func (v U64x2) AsU32x4() U32x4 {
	return U32x4{uint32(v[0]), uint32(v[0] >> 32), uint32(v[1]), uint32(v[1] >> 32)}
}

// Low returns lanes 0 and 1.
func (q U32x4) Low() U32x2 { return U32x2{q[0], q[1]} }

// High returns lanes 2 and 3.
func (q U32x4) High() U32x2 { return U32x2{q[2], q[3]} }

// Trn1 interleaves the even lanes of a and b.
func Trn1(a, b U32x4) U32x4 { return U32x4{a[0], b[0], a[2], b[2]} }

// Trn2 interleaves the odd lanes of a and b.
func Trn2(a, b U32x4) U32x4 { return U32x4{a[1], b[1], a[3], b[3]} }

// Ext extracts four lanes from the concatenation a:b starting at lane n.
func Ext(a, b U32x4, n int) U32x4 {
	var cat [8]uint32
	copy(cat[:4], a[:])
	copy(cat[4:], b[:])
	var out U32x4
	copy(out[:], cat[n:n+4])
	return out
}

// Ext64 is Ext over 64-bit lanes.
func Ext64(a, b U64x2, n int) U64x2 {
	cat := [4]uint64{a[0], a[1], b[0], b[1]}
	return U64x2{cat[n], cat[n+1]}
}
