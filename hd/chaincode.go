package hd

import (
	"crypto/subtle"
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
)

// ChainCodeSize is the width of a chain code.
const ChainCodeSize = 32

// ChainCode is the auxiliary entropy that accompanies an extended key
// and keys every child derivation.
type ChainCode [ChainCodeSize]byte

// ChainCodeFromBytes copies a 32-byte chain code.
func ChainCodeFromBytes(b []byte) (ChainCode, error) {
	var cc ChainCode
	if len(b) != ChainCodeSize {
		return cc, fmt.Errorf("%w: chain code must be %d bytes, got %d", bls.ErrDecoding, ChainCodeSize, len(b))
	}
	copy(cc[:], b)
	return cc, nil
}

// Bytes returns a copy of the chain code.
func (cc ChainCode) Bytes() []byte {
	b := make([]byte, ChainCodeSize)
	copy(b, cc[:])
	return b
}

// Equal reports whether two chain codes are identical, in constant time.
func (cc ChainCode) Equal(other ChainCode) bool {
	return subtle.ConstantTimeCompare(cc[:], other[:]) == 1
}

func (cc *ChainCode) zeroize() {
	for i := range cc {
		cc[i] = 0
	}
}
