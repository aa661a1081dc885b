package hd

import (
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
)

// ExtendedPublicKey is a BLS public key together with the chain code and
// tree position needed to derive its normal children.
type ExtendedPublicKey struct {
	header
	chainCode ChainCode
	key       *bls.PublicKey
	mode      Mode
}

// ExtendedPublicKeyFromBytes decodes a 93-byte extended public key whose
// point is encoded according to mode.
func ExtendedPublicKeyFromBytes(b []byte, mode Mode) (*ExtendedPublicKey, error) {
	if len(b) != ExtendedPublicKeySize {
		return nil, fmt.Errorf("%w: extended public key must be %d bytes, got %d", bls.ErrDecoding, ExtendedPublicKeySize, len(b))
	}
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %s", bls.ErrDomain, mode)
	}
	h := parseHeader(b)
	if h.version != Version {
		return nil, fmt.Errorf("%w: unsupported extended key version %d", bls.ErrDecoding, h.version)
	}
	cc, _ := ChainCodeFromBytes(b[headerSize : headerSize+ChainCodeSize])
	pk, err := bls.PublicKeyFromBytesFormat(b[headerSize+ChainCodeSize:], mode.Format())
	if err != nil {
		return nil, err
	}
	return &ExtendedPublicKey{header: h, chainCode: cc, key: pk, mode: mode}, nil
}

// PublicChild derives the normal child at index. Hardened indices fail
// with bls.ErrDomain.
func (k *ExtendedPublicKey) PublicChild(index uint32) (*ExtendedPublicKey, error) {
	if IsHardened(index) {
		return nil, fmt.Errorf("%w: hardened index %d requires the private key", bls.ErrDomain, index)
	}
	if k.depth >= MaxDepth {
		return nil, fmt.Errorf("%w: cannot derive below depth %d", bls.ErrDomain, MaxDepth)
	}
	f := k.mode.Format()
	tweak, cc := childEntropy(k.chainCode, k.key.Serialize(f), index)

	p := g1.NewPoint().ScalarMult(tweak, g1.Generator())
	p = g1.NewPoint().Add(k.key.Point(), p)

	return &ExtendedPublicKey{
		header: header{
			version:           k.version,
			depth:             k.depth + 1,
			parentFingerprint: k.key.Fingerprint(f),
			childNumber:       index,
		},
		chainCode: cc,
		key:       bls.PublicKeyFromPoint(p),
		mode:      k.mode,
	}, nil
}

// PublicKey returns the public key.
func (k *ExtendedPublicKey) PublicKey() *bls.PublicKey {
	return k.key
}

// ChainCode returns the chain code.
func (k *ExtendedPublicKey) ChainCode() ChainCode {
	return k.chainCode
}

// Fingerprint returns the fingerprint children record as their parent.
func (k *ExtendedPublicKey) Fingerprint() uint32 {
	return k.key.Fingerprint(k.mode.Format())
}

// Version returns the serialization version.
func (k *ExtendedPublicKey) Version() uint32 { return k.version }

// Depth returns the number of derivation steps from the root.
func (k *ExtendedPublicKey) Depth() uint8 { return k.depth }

// ParentFingerprint returns the parent's fingerprint, zero for a root.
func (k *ExtendedPublicKey) ParentFingerprint() uint32 { return k.parentFingerprint }

// ChildNumber returns the index this key was derived at, zero for a root.
func (k *ExtendedPublicKey) ChildNumber() uint32 { return k.childNumber }

// Mode returns the derivation mode.
func (k *ExtendedPublicKey) Mode() Mode { return k.mode }

// WithMode returns a copy of k that derives and serializes in mode m.
func (k *ExtendedPublicKey) WithMode(m Mode) *ExtendedPublicKey {
	c := *k
	c.mode = m
	return &c
}

// Bytes returns the 93-byte serialization, with the point encoded
// according to the key's mode.
func (k *ExtendedPublicKey) Bytes() []byte {
	b := make([]byte, 0, ExtendedPublicKeySize)
	b = k.header.append(b)
	b = append(b, k.chainCode[:]...)
	return append(b, k.key.Serialize(k.mode.Format())...)
}

// Equal reports whether both keys hold the same point and chain code.
// Tree position and mode are not compared.
func (k *ExtendedPublicKey) Equal(other *ExtendedPublicKey) bool {
	return k.key.Equal(other.key) && k.chainCode.Equal(other.chainCode)
}
