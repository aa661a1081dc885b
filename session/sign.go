package session

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/threshold"
)

var (
	// ErrNotEnoughShares is returned when fewer shares than the threshold
	// are passed to recovery.
	ErrNotEnoughShares = errors.New("not enough shares to meet threshold")

	// ErrDuplicateShare is returned when two shares carry the same ID.
	ErrDuplicateShare = errors.New("duplicate share ID")
)

// SignatureShare is one participant's signature on a message.
type SignatureShare struct {
	ID        []byte
	Signature *bls.Signature
}

// SignShare signs msg with this participant's key share.
//
// The participant must have completed the ceremony (or been restored with
// SetKeyShare) before signing.
func (p *Participant) SignShare(msg []byte) (*SignatureShare, error) {
	ks := p.KeyShare()
	if ks == nil {
		return nil, errors.New("DKG not complete: no key share available")
	}
	sig, err := bls.Sign(ks.SecretKey, msg)
	if err != nil {
		return nil, err
	}
	return &SignatureShare{ID: bytes.Clone(ks.ID), Signature: sig}, nil
}

// VerifyShare checks a signature share against the sender's public key
// share from the ceremony result.
func (r *DKGResult) VerifyShare(msg []byte, share *SignatureShare) error {
	if share == nil || share.Signature == nil {
		return fmt.Errorf("%w: empty signature share", bls.ErrInputShape)
	}
	pk, ok := r.AllPublicKeys[string(share.ID)]
	if !ok {
		return fmt.Errorf("signature share from unknown participant %x", share.ID)
	}
	if !bls.Verify(pk, msg, share.Signature) {
		return fmt.Errorf("invalid signature share from participant %x", share.ID)
	}
	return nil
}

// Recover combines signature shares into the group signature. At least t
// shares with distinct IDs are required; the result is only meaningful if
// t is the threshold the key was generated with.
func Recover(t int, shares []*SignatureShare) (*bls.Signature, error) {
	for i, s := range shares {
		if s == nil || s.Signature == nil {
			return nil, fmt.Errorf("%w: signature share %d is empty", bls.ErrInputShape, i)
		}
	}
	ids, err := checkShares(t, len(shares), func(i int) []byte { return shares[i].ID })
	if err != nil {
		return nil, err
	}
	sigs := make([]*bls.Signature, len(shares))
	for i, s := range shares {
		sigs[i] = s.Signature
	}
	return threshold.SignatureRecover(sigs, ids)
}

// RecoverKey reconstructs the group secret key from t or more key shares.
// This defeats the purpose of a threshold key and is meant for backup
// and migration tooling.
func RecoverKey(t int, shares []*KeyShare) (*bls.PrivateKey, error) {
	for i, s := range shares {
		if s == nil || s.SecretKey == nil {
			return nil, fmt.Errorf("%w: key share %d is empty", bls.ErrInputShape, i)
		}
	}
	ids, err := checkShares(t, len(shares), func(i int) []byte { return shares[i].ID })
	if err != nil {
		return nil, err
	}
	sks := make([]*bls.PrivateKey, len(shares))
	for i, s := range shares {
		sks[i] = s.SecretKey
	}
	return threshold.PrivateKeyRecover(sks, ids)
}

// Verify checks a signature against the group public key.
func Verify(groupKey *bls.PublicKey, msg []byte, sig *bls.Signature) error {
	if !bls.Verify(groupKey, msg, sig) {
		return errors.New("signature verification failed")
	}
	return nil
}

func checkShares(t, n int, idAt func(int) []byte) ([][]byte, error) {
	if t < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", t)
	}
	if n < t {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughShares, n, t)
	}
	ids := make([][]byte, n)
	seen := make(map[string]bool, n)
	for i := range ids {
		id := idAt(i)
		if seen[string(id)] {
			return nil, fmt.Errorf("%w: %x", ErrDuplicateShare, id)
		}
		seen[string(id)] = true
		ids[i] = id
	}
	return ids, nil
}
