// Package bls provides BLS12-381 key and signature value types.
//
// Private keys are scalars (32 bytes), public keys are G1 points (48 bytes)
// and signatures are G2 points (96 bytes). [Sign] and [Verify] implement the
// basic scheme with signatures in G2, so keys produced by threshold recovery
// or HD derivation interoperate with ordinary single-party BLS.
//
// Public keys and signatures serialize in two formats. [FormatStandard]
// is the ZCash compressed encoding; [FormatLegacy] is the encoding used
// before the IETF draft was finalized and is still needed to reproduce
// historical HD trees, fingerprints and signatures.
//
// [KeyGen] derives a key from seed material. [DeriveChildPrivateKey]
// derives hardened children through Lamport keys, and the unhardened
// variants derive children that can also be reached from the public key.
//
// The package also defines the error kinds shared by the threshold and hd
// packages: [ErrInputShape], [ErrDecoding], [ErrDomain] and [ErrPrimitive].
package bls
