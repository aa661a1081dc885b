package hd

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"

	"github.com/zipevo/bls-signatures/bls12381"
	"github.com/zipevo/bls-signatures/group"
)

const (
	// HardenedOffset is the first hardened child index.
	HardenedOffset uint32 = 1 << 31

	// Version is the only extended key version this package reads or writes.
	Version uint32 = 1

	// MaxDepth is the deepest level a key may have; keys at this depth
	// cannot derive children.
	MaxDepth = 255

	headerSize = 4 + 1 + 4 + 4

	// ExtendedPrivateKeySize is the width of a serialized extended private key.
	ExtendedPrivateKeySize = headerSize + ChainCodeSize + bls12381.ScalarSize
	// ExtendedPublicKeySize is the width of a serialized extended public key.
	ExtendedPublicKeySize = headerSize + ChainCodeSize + bls12381.G1Size
)

var (
	masterKey = []byte("BLS HD seed")
	g1        = bls12381.NewG1()
)

// IsHardened reports whether index lies in the hardened half of the
// index space.
func IsHardened(index uint32) bool {
	return index >= HardenedOffset
}

// HardenedIndex returns the hardened form of i. It is the identity on
// indices that are already hardened.
func HardenedIndex(i uint32) uint32 {
	return i | HardenedOffset
}

// masterEntropy returns the root scalar and chain code for seed.
func masterEntropy(seed []byte) (group.Scalar, ChainCode) {
	input := make([]byte, len(seed)+1)
	copy(input, seed)

	mac := hmac.New(sha256.New, masterKey)
	mac.Write(input)
	sk := g1.NewScalar().SetBytes(mac.Sum(nil))

	input[len(seed)] = 1
	mac.Reset()
	mac.Write(input)
	var cc ChainCode
	copy(cc[:], mac.Sum(nil))
	return sk, cc
}

// childEntropy returns the scalar tweak and chain code for the child at
// index, where data is the parent's serialized private or public key.
func childEntropy(parent ChainCode, data []byte, index uint32) (group.Scalar, ChainCode) {
	input := make([]byte, len(data)+5)
	copy(input, data)
	binary.BigEndian.PutUint32(input[len(data):], index)

	mac := hmac.New(sha256.New, parent[:])
	mac.Write(input)
	tweak := g1.NewScalar().SetBytes(mac.Sum(nil))

	input[len(input)-1] = 1
	mac.Reset()
	mac.Write(input)
	var cc ChainCode
	copy(cc[:], mac.Sum(nil))

	for i := range input {
		input[i] = 0
	}
	return tweak, cc
}

type header struct {
	version           uint32
	depth             uint8
	parentFingerprint uint32
	childNumber       uint32
}

func (h header) append(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, h.version)
	b = append(b, h.depth)
	b = binary.BigEndian.AppendUint32(b, h.parentFingerprint)
	return binary.BigEndian.AppendUint32(b, h.childNumber)
}

func parseHeader(b []byte) header {
	return header{
		version:           binary.BigEndian.Uint32(b[0:4]),
		depth:             b[4],
		parentFingerprint: binary.BigEndian.Uint32(b[5:9]),
		childNumber:       binary.BigEndian.Uint32(b[9:13]),
	}
}
