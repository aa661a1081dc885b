package threshold

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/group"
)

// hkdf-sha256 yields at most 255 blocks of 32 bytes, and each coefficient
// consumes 48 bytes.
const maxDeterministicCoefficients = 255 * sha256.Size / 48

var splitInfo = []byte("bls threshold split coefficients")

// ErrInvalidShare is returned when a share does not match the
// verification vector it was dealt under.
var ErrInvalidShare = errors.New("share does not match verification vector")

// Dealing is the output of a trusted dealer.
type Dealing struct {
	// Shares[i] is the private key share for the i-th requested ID.
	Shares []*bls.PrivateKey
	// VerificationVector holds the public keys of the polynomial
	// coefficients. Its first entry is the group public key.
	VerificationVector []*bls.PublicKey
}

// Split shares secret among ids so that any t of the resulting shares
// recover it. The t-1 higher coefficients are drawn from r.
func Split(secret *bls.PrivateKey, t int, ids [][]byte, r io.Reader) (*Dealing, error) {
	if secret == nil {
		return nil, fmt.Errorf("%w: nil secret", bls.ErrInputShape)
	}
	if t < 1 {
		return nil, fmt.Errorf("%w: threshold must be at least 1, got %d", bls.ErrInputShape, t)
	}
	if len(ids) < t {
		return nil, fmt.Errorf("%w: %d IDs cannot satisfy threshold %d", bls.ErrInputShape, len(ids), t)
	}
	xs, err := idPoints(ids)
	if err != nil {
		return nil, err
	}
	if _, err := lagrangeAtZero(xs); err != nil {
		return nil, err
	}

	coeffs := make([]group.Scalar, t)
	coeffs[0] = secret.Scalar()
	for i := 1; i < t; i++ {
		c, err := g1.RandomScalar(r)
		if err != nil {
			return nil, fmt.Errorf("failed to draw coefficient: %w", err)
		}
		coeffs[i] = c
	}
	defer func() {
		for _, c := range coeffs {
			c.Zeroize()
		}
	}()

	d := &Dealing{
		Shares:             make([]*bls.PrivateKey, len(ids)),
		VerificationVector: make([]*bls.PublicKey, t),
	}
	for i, c := range coeffs {
		d.VerificationVector[i] = bls.PrivateKeyFromScalar(c).PublicKey()
	}
	for i, x := range xs {
		d.Shares[i] = bls.PrivateKeyFromScalar(evalScalars(coeffs, x))
	}
	return d, nil
}

// SplitDeterministic is Split with coefficients derived by HKDF-SHA256
// from the secret and seed, so the same inputs always produce the same
// dealing. t is limited to 171.
func SplitDeterministic(secret *bls.PrivateKey, t int, ids [][]byte, seed []byte) (*Dealing, error) {
	if secret == nil {
		return nil, fmt.Errorf("%w: nil secret", bls.ErrInputShape)
	}
	if t-1 > maxDeterministicCoefficients {
		return nil, fmt.Errorf("%w: threshold %d exceeds deterministic limit %d", bls.ErrInputShape, t, maxDeterministicCoefficients+1)
	}
	r := hkdf.New(sha256.New, secret.Bytes(), seed, splitInfo)
	return Split(secret, t, ids, r)
}

// VerifyPrivateKeyShare checks share against the verification vector of
// the dealing it came from: share·G1 must equal the vector evaluated at id.
func VerifyPrivateKeyShare(vvec []*bls.PublicKey, id []byte, share *bls.PrivateKey) error {
	if share == nil {
		return fmt.Errorf("%w: nil share", bls.ErrInputShape)
	}
	expected, err := PublicKeyShare(vvec, id)
	if err != nil {
		return err
	}
	if !expected.Equal(share.PublicKey()) {
		return ErrInvalidShare
	}
	return nil
}
