package bls

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/zipevo/bls-signatures/bls12381"
	"github.com/zipevo/bls-signatures/group"
)

const (
	// PrivateKeySize is the width of a serialized private key.
	PrivateKeySize = bls12381.ScalarSize
	// PublicKeySize is the width of a serialized public key.
	PublicKeySize = bls12381.G1Size
	// SignatureSize is the width of a serialized signature.
	SignatureSize = bls12381.G2Size
)

var (
	g1 = bls12381.NewG1()
	g2 = bls12381.NewG2()
)

// PrivateKey is a BLS private key: a scalar modulo the group order.
type PrivateKey struct {
	s *bls12381.Scalar
}

// PrivateKeyFromBytes decodes a 32-byte big-endian private key.
// Values not strictly less than the group order are rejected.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrDecoding, PrivateKeySize, len(b))
	}
	s := bls12381.NewScalar()
	if _, err := s.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %w: private key: %w", ErrDecoding, ErrPrimitive, err)
	}
	return &PrivateKey{s: s}, nil
}

// PrivateKeyFromBytesModOrder decodes a 32-byte big-endian value reduced
// modulo the group order. Any 32 bytes are accepted.
func PrivateKeyFromBytesModOrder(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrDecoding, PrivateKeySize, len(b))
	}
	s := bls12381.NewScalar()
	s.SetBytes(b)
	return &PrivateKey{s: s}, nil
}

// PrivateKeyFromScalar wraps a copy of s.
func PrivateKeyFromScalar(s group.Scalar) *PrivateKey {
	c := bls12381.NewScalar()
	c.Set(s)
	return &PrivateKey{s: c}
}

// Scalar returns a copy of the underlying scalar.
func (sk *PrivateKey) Scalar() group.Scalar {
	return bls12381.NewScalar().Set(sk.s)
}

// Bytes returns the 32-byte big-endian encoding.
func (sk *PrivateKey) Bytes() []byte {
	return sk.s.Bytes()
}

// PublicKey returns sk·G1.
func (sk *PrivateKey) PublicKey() *PublicKey {
	p := g1.NewPoint().ScalarMult(sk.s, g1.Generator())
	return &PublicKey{p: p.(*bls12381.G1Point)}
}

// Equal reports whether both keys hold the same scalar.
func (sk *PrivateKey) Equal(other *PrivateKey) bool {
	return sk.s.Equal(other.s)
}

// Zeroize overwrites the key with zero.
func (sk *PrivateKey) Zeroize() {
	sk.s.Zeroize()
}

// PublicKey is a BLS public key, a point in G1.
type PublicKey struct {
	p *bls12381.G1Point
}

// PublicKeyFromBytes decodes a 48-byte compressed G1 point.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	return PublicKeyFromBytesFormat(b, FormatStandard)
}

// PublicKeyFromBytesFormat decodes a 48-byte G1 point in the given format.
func PublicKeyFromBytesFormat(b []byte, f Format) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrDecoding, PublicKeySize, len(b))
	}
	if f == FormatLegacy {
		std, err := legacyToStandard(b)
		if err != nil {
			return nil, err
		}
		b = std
	}
	p := &bls12381.G1Point{}
	if _, err := p.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %w: public key: %w", ErrDecoding, ErrPrimitive, err)
	}
	return &PublicKey{p: p}, nil
}

// PublicKeyFromPoint wraps a copy of p, which must be a G1 point.
func PublicKeyFromPoint(p group.Point) *PublicKey {
	c := &bls12381.G1Point{}
	c.Set(p)
	return &PublicKey{p: c}
}

// Point returns a copy of the underlying G1 point.
func (pk *PublicKey) Point() group.Point {
	return g1.NewPoint().Set(pk.p)
}

// Bytes returns the standard 48-byte compressed encoding.
func (pk *PublicKey) Bytes() []byte {
	return pk.p.Bytes()
}

// Serialize returns the 48-byte encoding in the given format.
func (pk *PublicKey) Serialize(f Format) []byte {
	b := pk.p.Bytes()
	if f == FormatLegacy {
		return standardToLegacy(b)
	}
	return b
}

// Fingerprint returns the first four bytes, read big-endian, of the
// SHA-256 digest of the key serialized in the given format.
func (pk *PublicKey) Fingerprint(f Format) uint32 {
	sum := sha256.Sum256(pk.Serialize(f))
	return binary.BigEndian.Uint32(sum[:4])
}

// Equal reports whether both keys are the same point.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.p.Equal(other.p)
}

// Signature is a BLS signature, a point in G2.
type Signature struct {
	p *bls12381.G2Point
}

// SignatureFromBytes decodes a 96-byte compressed G2 point.
func SignatureFromBytes(b []byte) (*Signature, error) {
	return SignatureFromBytesFormat(b, FormatStandard)
}

// SignatureFromBytesFormat decodes a 96-byte G2 point in the given format.
func SignatureFromBytesFormat(b []byte, f Format) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrDecoding, SignatureSize, len(b))
	}
	if f == FormatLegacy {
		std, err := legacyToStandard(b)
		if err != nil {
			return nil, err
		}
		b = std
	}
	p := &bls12381.G2Point{}
	if _, err := p.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %w: signature: %w", ErrDecoding, ErrPrimitive, err)
	}
	return &Signature{p: p}, nil
}

// SignatureFromPoint wraps a copy of p, which must be a G2 point.
func SignatureFromPoint(p group.Point) *Signature {
	c := &bls12381.G2Point{}
	c.Set(p)
	return &Signature{p: c}
}

// Point returns a copy of the underlying G2 point.
func (sig *Signature) Point() group.Point {
	return g2.NewPoint().Set(sig.p)
}

// Bytes returns the standard 96-byte compressed encoding.
func (sig *Signature) Bytes() []byte {
	return sig.p.Bytes()
}

// Serialize returns the 96-byte encoding in the given format.
func (sig *Signature) Serialize(f Format) []byte {
	b := sig.p.Bytes()
	if f == FormatLegacy {
		return standardToLegacy(b)
	}
	return b
}

// Equal reports whether both signatures are the same point.
func (sig *Signature) Equal(other *Signature) bool {
	return sig.p.Equal(other.p)
}
