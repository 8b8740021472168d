package simd

// BitReverse reverses the lowest nbits of x.
func BitReverse(x, nbits int) int {
	rev := 0
	for i := 0; i < nbits; i++ {
		rev = rev<<1 | x&1
		x >>= 1
	}
	return rev
}

// Transpose arranges eight limbs into the lane pairs consumed by the
// transposed kernel: limbs are taken in 3-bit bit-reversed order
// (0, 4, 2, 6, 1, 5, 3, 7) and paired consecutively, so the result is
// {b0,b4}, {b2,b6}, {b1,b5}, {b3,b7} with the first limb of each pair in
// lane 0.
func Transpose(v [8]uint32) [4]U32x2 {
	var out [4]U32x2
	for i := 0; i < 8; i++ {
		out[i/2][i%2] = v[BitReverse(i, 3)]
	}
	return out
}
