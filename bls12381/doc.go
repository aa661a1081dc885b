// Package bls12381 provides BLS12-381 implementations of the [group.Group]
// interface for the threshold BLS engine.
//
// BLS12-381 is a pairing-friendly curve with two prime-order subgroups of
// the same order r:
//
//   - G1, over Fp, holds public keys (48-byte compressed points)
//   - G2, over Fp2, holds signatures (96-byte compressed points)
//
// This package wraps the implementation from gnark-crypto, providing
// [Scalar], [G1Point] and [G2Point] types that satisfy [group.Scalar] and
// [group.Point], plus the [G1] and [G2] factories that satisfy [group.Group].
// It additionally exposes hash-to-G2 ([G2.HashToCurve]) and the pairing
// product check ([PairingCheck]) needed by BLS signing and verification.
//
// # Encodings
//
// Scalars encode as 32 big-endian bytes. Points use the ZCash compressed
// serialization: the three most significant bits of the first byte carry
// the compression, infinity and sign flags.
//
// # Usage
//
//	g1 := bls12381.NewG1()
//	sk, _ := g1.RandomScalar(rand.Reader)
//	pk := g1.NewPoint().ScalarMult(sk, g1.Generator())
//
// # Security
//
// SetBytes on points performs the subgroup membership check. Scalar
// operations are performed modulo r by gnark-crypto's Montgomery field
// arithmetic.
package bls12381
