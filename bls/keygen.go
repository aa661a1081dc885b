package bls

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/zipevo/bls-signatures/bls12381"
)

const (
	// KeyGenMinSeedSize is the shortest seed KeyGen accepts.
	KeyGenMinSeedSize = 32

	keyGenOKMSize = 48
	lamportChunks = 255
)

var keyGenSalt = []byte("BLS-SIG-KEYGEN-SALT-")

// KeyGen derives a private key from seed: HKDF-SHA256 with the salt
// "BLS-SIG-KEYGEN-SALT-" over seed‖0x00, expanded to 48 bytes and reduced
// modulo the group order.
func KeyGen(seed []byte) (*PrivateKey, error) {
	if len(seed) < KeyGenMinSeedSize {
		return nil, fmt.Errorf("%w: seed must be at least %d bytes, got %d", ErrDecoding, KeyGenMinSeedSize, len(seed))
	}
	ikm := make([]byte, len(seed)+1)
	copy(ikm, seed)
	defer clear(ikm)

	info := []byte{0, keyGenOKMSize}
	okm := make([]byte, keyGenOKMSize)
	defer clear(okm)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, keyGenSalt, info), okm); err != nil {
		return nil, fmt.Errorf("%w: hkdf: %w", ErrPrimitive, err)
	}
	s := bls12381.NewScalar()
	s.SetBytes(okm)
	return &PrivateKey{s: s}, nil
}

// DeriveChildPrivateKey derives the hardened child of sk at index through
// a Lamport public key, as in EIP-2333. The child reveals nothing about
// sk even together with sk's public key.
func DeriveChildPrivateKey(sk *PrivateKey, index uint32) (*PrivateKey, error) {
	var salt [4]byte
	binary.BigEndian.PutUint32(salt[:], index)

	ikm := sk.Bytes()
	defer clear(ikm)
	notIKM := make([]byte, len(ikm))
	defer clear(notIKM)
	for i, b := range ikm {
		notIKM[i] = ^b
	}

	lamportPK := sha256.New()
	for _, k := range [][]byte{ikm, notIKM} {
		chunks := make([]byte, lamportChunks*sha256.Size)
		if _, err := io.ReadFull(hkdf.New(sha256.New, k, salt[:], nil), chunks); err != nil {
			return nil, fmt.Errorf("%w: hkdf: %w", ErrPrimitive, err)
		}
		for i := 0; i < lamportChunks; i++ {
			sum := sha256.Sum256(chunks[i*sha256.Size : (i+1)*sha256.Size])
			lamportPK.Write(sum[:])
		}
		clear(chunks)
	}
	return KeyGen(lamportPK.Sum(nil))
}

// DeriveChildPrivateKeyUnhardened derives the unhardened child of sk at
// index: sk + SHA-256(pk‖index), with pk serialized in format f.
// DeriveChildPublicKeyUnhardened reaches the matching public key.
func DeriveChildPrivateKeyUnhardened(sk *PrivateKey, index uint32, f Format) *PrivateKey {
	tweak := unhardenedTweak(sk.PublicKey(), index, f)
	defer tweak.Zeroize()
	child := bls12381.NewScalar()
	child.Add(sk.s, tweak)
	return &PrivateKey{s: child}
}

// DeriveChildPublicKeyUnhardened derives the public key of the unhardened
// child of pk at index: pk + SHA-256(pk‖index)·G1.
func DeriveChildPublicKeyUnhardened(pk *PublicKey, index uint32, f Format) *PublicKey {
	tweak := unhardenedTweak(pk, index, f)
	p := g1.NewPoint().ScalarMult(tweak, g1.Generator())
	p = g1.NewPoint().Add(pk.p, p)
	return &PublicKey{p: p.(*bls12381.G1Point)}
}

func unhardenedTweak(pk *PublicKey, index uint32, f Format) *bls12381.Scalar {
	buf := binary.BigEndian.AppendUint32(pk.Serialize(f), index)
	sum := sha256.Sum256(buf)
	s := bls12381.NewScalar()
	s.SetBytes(sum[:])
	return s
}
