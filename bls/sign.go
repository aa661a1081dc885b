package bls

import (
	"fmt"

	"github.com/zipevo/bls-signatures/bls12381"
)

// DST is the domain separation tag of the basic BLS signature scheme
// with signatures in G2.
var DST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// Sign returns sk·H(msg), where H hashes to G2 under [DST].
func Sign(sk *PrivateKey, msg []byte) (*Signature, error) {
	h, err := g2.HashToCurve(msg, DST)
	if err != nil {
		return nil, fmt.Errorf("%w: hash to G2: %w", ErrPrimitive, err)
	}
	sig := g2.NewPoint().ScalarMult(sk.s, h)
	return &Signature{p: sig.(*bls12381.G2Point)}, nil
}

// Verify reports whether sig is a valid signature on msg under pk.
// It checks e(-G1, sig) · e(pk, H(msg)) == 1. The identity public key
// never verifies.
func Verify(pk *PublicKey, msg []byte, sig *Signature) bool {
	if pk.p.IsIdentity() {
		return false
	}
	h, err := g2.HashToCurve(msg, DST)
	if err != nil {
		return false
	}
	negG := g1.NewPoint().Negate(g1.Generator()).(*bls12381.G1Point)
	ok, err := bls12381.PairingCheck(
		[]*bls12381.G1Point{negG, pk.p},
		[]*bls12381.G2Point{sig.p, h},
	)
	return err == nil && ok
}
