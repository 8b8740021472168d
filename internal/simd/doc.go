// Package simd holds the lane-parallel Montgomery kernels.
//
// The kernels are written against small fixed-size lane types (U32x2,
// U64x2, U32x4) whose operations are named after the NEON instructions
// they stand for: Mull (VMULL), Mlal (VMLAL), Trn1/Trn2 (VTRN), Ext (VEXT),
// Narrow (VMOVN) and WideningAdd (VADDL). The Go compiler keeps these small arrays in
// registers, and the data flow of each kernel mirrors its vector
// formulation so the bit-level results can be compared one to one with
// the scalar kernels in package mont.
//
// Three kernels are provided:
//
//   - BM17: the Bos-Montgomery two-lane split, where one lane accumulates
//     a*b and the other q*p, and the result is their difference.
//   - SLGCK14: the transposed NEON kernel for 8x32, which keeps column
//     pairs (t0,t2), (t1,t3), (t4,t6), (t5,t7) in 64-bit lanes and defers
//     carries to a single final pass.
//   - CarryLast: lazy column accumulation for narrow shapes, normalizing
//     only the lowest column per round.
package simd
