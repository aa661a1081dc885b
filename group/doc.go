// Package group defines abstract interfaces for the prime-order groups
// used by the threshold BLS engine.
//
// This package provides three core interfaces that abstract over the
// mathematical operations needed for secret sharing and interpolation:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Point]: Elements of the group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for creating scalars and points
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Add, Mul, and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// All operations that can fail return errors rather than panicking, making
// error handling explicit and predictable.
//
// Because Lagrange interpolation is linear, the same algorithm recovers a
// private key (over [Scalar]), a public key (over G1 points) and a signature
// (over G2 points). The threshold package is written once against these
// interfaces and instantiated for each case.
//
// # Implementing a Group
//
// To implement these interfaces for a new elliptic curve:
//
//  1. Create a Scalar type that wraps your field element and implements [Scalar]
//  2. Create a Point type that wraps your curve point and implements [Point]
//  3. Create a Group type that implements [Group] as a factory
//
// See the bls12381 package for the G1 and G2 implementations.
//
// # Security Considerations
//
// Implementations must ensure:
//
//   - Scalar arithmetic is performed modulo the group order
//   - Random scalars are generated from cryptographically secure sources
//   - Invalid curve points and points outside the prime-order subgroup
//     are rejected in SetBytes
//   - Zeroize actually overwrites secret material
package group
