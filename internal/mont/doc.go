// Package mont implements scalar Montgomery multiplication and the
// conditional final reduction.
//
// Every kernel computes a*b*R^-1 mod p for a, b < p and R = 2^(L*W). The
// NoReduce variants stop before the final subtraction and return an
// Accumulator holding a value below 2p; Reduce brings it into [0, p).
//
// Three word-serial variants are provided:
//
//   - CIOS: the classic Coarsely Integrated Operand Scanning loop with an
//     L+2 limb accumulator.
//   - BH23: the CIOS refinement that iterates b in the outer loop and folds
//     the top carry into limb L-1, saving one limb of state. It needs the
//     modulus to leave a spare bit in its top limb.
//   - Domb: multiplication and reduction carried in one inner loop through
//     two independent carry chains. It has the same modulus requirement.
package mont
