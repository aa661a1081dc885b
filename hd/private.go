package hd

import (
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
)

// ExtendedPrivateKey is a BLS private key together with the chain code
// and tree position needed to derive its children.
type ExtendedPrivateKey struct {
	header
	chainCode ChainCode
	key       *bls.PrivateKey
	mode      Mode
}

// NewExtendedPrivateKeyFromSeed derives the root of an HD tree from seed,
// which may have any length, including zero. The same seed and mode
// always produce the same key.
func NewExtendedPrivateKeyFromSeed(seed []byte, mode Mode) (*ExtendedPrivateKey, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %s", bls.ErrDomain, mode)
	}
	sk, cc := masterEntropy(seed)
	defer sk.Zeroize()
	return &ExtendedPrivateKey{
		header:    header{version: Version},
		chainCode: cc,
		key:       bls.PrivateKeyFromScalar(sk),
		mode:      mode,
	}, nil
}

// ExtendedPrivateKeyFromBytes decodes a 77-byte extended private key.
func ExtendedPrivateKeyFromBytes(b []byte, mode Mode) (*ExtendedPrivateKey, error) {
	if len(b) != ExtendedPrivateKeySize {
		return nil, fmt.Errorf("%w: extended private key must be %d bytes, got %d", bls.ErrDecoding, ExtendedPrivateKeySize, len(b))
	}
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %s", bls.ErrDomain, mode)
	}
	h := parseHeader(b)
	if h.version != Version {
		return nil, fmt.Errorf("%w: unsupported extended key version %d", bls.ErrDecoding, h.version)
	}
	cc, _ := ChainCodeFromBytes(b[headerSize : headerSize+ChainCodeSize])
	sk, err := bls.PrivateKeyFromBytes(b[headerSize+ChainCodeSize:])
	if err != nil {
		return nil, err
	}
	return &ExtendedPrivateKey{header: h, chainCode: cc, key: sk, mode: mode}, nil
}

// PrivateChild derives the child at index. Hardened indices mix the
// private scalar into the derivation; normal indices mix the public key
// encoded in the key's mode, so ExtendedPublicKey.PublicChild reaches
// the same child.
func (k *ExtendedPrivateKey) PrivateChild(index uint32) (*ExtendedPrivateKey, error) {
	if k.depth >= MaxDepth {
		return nil, fmt.Errorf("%w: cannot derive below depth %d", bls.ErrDomain, MaxDepth)
	}
	pk := k.key.PublicKey()

	var data []byte
	if IsHardened(index) {
		data = k.key.Bytes()
	} else {
		data = pk.Serialize(k.mode.Format())
	}
	tweak, cc := childEntropy(k.chainCode, data, index)
	defer tweak.Zeroize()

	parent := k.key.Scalar()
	defer parent.Zeroize()
	sk := g1.NewScalar().Add(parent, tweak)
	defer sk.Zeroize()

	return &ExtendedPrivateKey{
		header: header{
			version:           k.version,
			depth:             k.depth + 1,
			parentFingerprint: pk.Fingerprint(k.mode.Format()),
			childNumber:       index,
		},
		chainCode: cc,
		key:       bls.PrivateKeyFromScalar(sk),
		mode:      k.mode,
	}, nil
}

// PublicChild returns the extended public key of the child at index.
// Both hardened and normal indices are allowed.
func (k *ExtendedPrivateKey) PublicChild(index uint32) (*ExtendedPublicKey, error) {
	child, err := k.PrivateChild(index)
	if err != nil {
		return nil, err
	}
	defer child.Zeroize()
	return child.ExtendedPublicKey(), nil
}

// ExtendedPublicKey returns the public companion of k, with the same
// chain code, tree position and mode.
func (k *ExtendedPrivateKey) ExtendedPublicKey() *ExtendedPublicKey {
	return &ExtendedPublicKey{
		header:    k.header,
		chainCode: k.chainCode,
		key:       k.key.PublicKey(),
		mode:      k.mode,
	}
}

// PrivateKey returns a copy of the private key.
func (k *ExtendedPrivateKey) PrivateKey() *bls.PrivateKey {
	return bls.PrivateKeyFromScalar(k.key.Scalar())
}

// PublicKey returns the public key.
func (k *ExtendedPrivateKey) PublicKey() *bls.PublicKey {
	return k.key.PublicKey()
}

// ChainCode returns the chain code.
func (k *ExtendedPrivateKey) ChainCode() ChainCode {
	return k.chainCode
}

// Version returns the serialization version.
func (k *ExtendedPrivateKey) Version() uint32 { return k.version }

// Depth returns the number of derivation steps from the root.
func (k *ExtendedPrivateKey) Depth() uint8 { return k.depth }

// ParentFingerprint returns the parent's fingerprint, zero for a root.
func (k *ExtendedPrivateKey) ParentFingerprint() uint32 { return k.parentFingerprint }

// ChildNumber returns the index this key was derived at, zero for a root.
func (k *ExtendedPrivateKey) ChildNumber() uint32 { return k.childNumber }

// Mode returns the derivation mode.
func (k *ExtendedPrivateKey) Mode() Mode { return k.mode }

// WithMode returns a copy of k that derives and serializes in mode m.
func (k *ExtendedPrivateKey) WithMode(m Mode) *ExtendedPrivateKey {
	return &ExtendedPrivateKey{
		header:    k.header,
		chainCode: k.chainCode,
		key:       k.PrivateKey(),
		mode:      m,
	}
}

// Bytes returns the 77-byte serialization.
func (k *ExtendedPrivateKey) Bytes() []byte {
	b := make([]byte, 0, ExtendedPrivateKeySize)
	b = k.header.append(b)
	b = append(b, k.chainCode[:]...)
	return append(b, k.key.Bytes()...)
}

// Equal reports whether both keys hold the same private key and chain
// code. Tree position and mode are not compared.
func (k *ExtendedPrivateKey) Equal(other *ExtendedPrivateKey) bool {
	return k.key.Equal(other.key) && k.chainCode.Equal(other.chainCode)
}

// Zeroize overwrites the private key and chain code.
func (k *ExtendedPrivateKey) Zeroize() {
	k.key.Zeroize()
	k.chainCode.zeroize()
}
