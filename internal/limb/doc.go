// Package limb defines the word-level arithmetic that every Montgomery
// kernel in montcalc is written against.
//
// A limb is one digit of a multi-precision integer. Three storage layouts
// are supported:
//
//   - 8x32: eight 32-bit limbs held in uint32, with products formed in uint64.
//   - 4x64: four 64-bit limbs held in uint64, with 128-bit products split
//     into (hi, lo) halves.
//   - 5x51: five 51-bit limbs held in uint64. Each result is masked to 51
//     bits and the part above bit 51 of the 128-bit product becomes the carry.
//
// The Arith interface is the only place where the layout is visible. The
// kernels in package mont and package simd are generic over it, so a single
// implementation of each algorithm serves every shape.
//
// The 64-bit backend is selected at build time: Native64 on architectures
// where math/bits lowers Mul64/Add64/Sub64 to single instructions, and
// Portable64 (schoolbook over 32-bit halves) elsewhere or with the purego
// build tag.
package limb
