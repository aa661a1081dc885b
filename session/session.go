package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/bls12381"
	"github.com/zipevo/bls-signatures/group"
	"github.com/zipevo/bls-signatures/threshold"
)

var g1 = bls12381.NewG1()

// Participant manages a single participant's state throughout a key
// generation ceremony and later signing. Create instances using
// [NewParticipant]. A Participant is safe for concurrent use.
type Participant struct {
	mu        sync.Mutex
	id        []byte
	threshold int
	total     int
	allIDs    [][]byte
	dealing   *threshold.Dealing
	keyShare  *KeyShare
	finalized bool
}

// KeyShare is a participant's share of the distributed key.
type KeyShare struct {
	ID        []byte          // participant identifier
	SecretKey *bls.PrivateKey // secret key share
	PublicKey *bls.PublicKey  // public key share
	GroupKey  *bls.PublicKey  // combined group public key

	// VerificationVector is the sum of every participant's vector. Its
	// evaluation at any member ID is that member's public key share.
	VerificationVector []*bls.PublicKey
}

// DKGResult contains the output of a successful key generation ceremony.
type DKGResult struct {
	// KeyShare is this participant's share of the distributed key.
	// Store this securely; it is required for signing.
	KeyShare *KeyShare

	// GroupKey is the combined public key for the threshold group.
	// This is the same for all participants and is used to verify signatures.
	GroupKey *bls.PublicKey

	// AllPublicKeys maps each member ID, as a string, to its public key
	// share. Use it to check signature shares before recovery.
	AllPublicKeys map[string]*bls.PublicKey
}

// Round1Broadcast is the public contribution of one participant.
type Round1Broadcast struct {
	From               []byte
	VerificationVector []*bls.PublicKey
}

// Round1Share is a secret share sent from one participant to another.
type Round1Share struct {
	From  []byte
	To    []byte
	Share *bls.PrivateKey
}

// Round1Output contains all messages generated during round 1.
type Round1Output struct {
	// Broadcast is the verification vector that must be sent to all participants.
	Broadcast *Round1Broadcast

	// PrivateShares maps recipient ID, as a string, to their private share.
	// Each share must be sent to its recipient over a secure, authenticated channel.
	PrivateShares map[string]*Round1Share
}

// Round1Input contains all messages received during round 1.
type Round1Input struct {
	// Broadcasts contains the verification vectors from all participants
	// (including this participant's own broadcast).
	Broadcasts []*Round1Broadcast

	// PrivateShares contains the private shares sent TO this participant
	// from all other participants.
	PrivateShares []*Round1Share
}

// NewParticipant creates a participant named id in a threshold-of-total
// group.
func NewParticipant(id []byte, threshold, total int) (*Participant, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", threshold)
	}
	if total < threshold {
		return nil, fmt.Errorf("total must be >= threshold, got %d < %d", total, threshold)
	}
	if len(id) == 0 {
		return nil, errors.New("participant ID must not be empty")
	}
	return &Participant{
		id:        bytes.Clone(id),
		threshold: threshold,
		total:     total,
	}, nil
}

// ID returns this participant's identifier.
func (p *Participant) ID() []byte {
	return bytes.Clone(p.id)
}

// Threshold returns the minimum number of signature shares needed.
func (p *Participant) Threshold() int {
	return p.threshold
}

// KeyShare returns this participant's key share after the ceremony.
// Returns nil if the ceremony has not been finalized.
func (p *Participant) KeyShare() *KeyShare {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keyShare
}

// GenerateRound1 generates all round 1 messages.
//
// This draws a random polynomial of degree threshold-1 and creates:
//   - A public broadcast containing the verification vector of the polynomial
//   - Private shares for each other participant
//
// allIDs must name every participant, this one included, exactly once.
func (p *Participant) GenerateRound1(rng io.Reader, allIDs [][]byte) (*Round1Output, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dealing != nil || p.finalized {
		return nil, errors.New("round 1 already generated")
	}
	if len(allIDs) != p.total {
		return nil, fmt.Errorf("expected %d participant IDs, got %d", p.total, len(allIDs))
	}
	if !containsID(allIDs, p.id) {
		return nil, errors.New("own ID missing from participant list")
	}

	s, err := g1.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to draw secret: %w", err)
	}
	secret := bls.PrivateKeyFromScalar(s)
	s.Zeroize()
	defer secret.Zeroize()

	dealing, err := threshold.Split(secret, p.threshold, allIDs, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to deal shares: %w", err)
	}
	p.dealing = dealing
	p.allIDs = cloneIDs(allIDs)

	privateShares := make(map[string]*Round1Share, len(allIDs)-1)
	for i, recipient := range allIDs {
		if bytes.Equal(recipient, p.id) {
			continue // don't send to ourselves
		}
		privateShares[string(recipient)] = &Round1Share{
			From:  bytes.Clone(p.id),
			To:    bytes.Clone(recipient),
			Share: dealing.Shares[i],
		}
	}

	return &Round1Output{
		Broadcast: &Round1Broadcast{
			From:               bytes.Clone(p.id),
			VerificationVector: dealing.VerificationVector,
		},
		PrivateShares: privateShares,
	}, nil
}

// ProcessRound1 processes received round 1 messages and completes the
// ceremony.
//
// Every received share is checked against its sender's verification
// vector. The key share is the sum of all shares addressed to this
// participant, and the group verification vector is the coefficient-wise
// sum of all broadcast vectors.
//
// The input must contain:
//   - Broadcasts from ALL participants (including this one)
//   - Private shares from all OTHER participants
func (p *Participant) ProcessRound1(input *Round1Input) (*DKGResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dealing == nil {
		return nil, errors.New("must call GenerateRound1 before ProcessRound1")
	}
	if p.finalized {
		return nil, errors.New("DKG already finalized")
	}
	if len(input.Broadcasts) != p.total {
		return nil, fmt.Errorf("expected %d broadcasts, got %d", p.total, len(input.Broadcasts))
	}
	if len(input.PrivateShares) != p.total-1 {
		return nil, fmt.Errorf("expected %d private shares, got %d", p.total-1, len(input.PrivateShares))
	}

	// Build a map of broadcasts by sender ID for lookup
	broadcastByID := make(map[string]*Round1Broadcast, len(input.Broadcasts))
	for _, b := range input.Broadcasts {
		key := string(b.From)
		if !containsID(p.allIDs, b.From) {
			return nil, fmt.Errorf("broadcast from unknown participant %x", b.From)
		}
		if _, exists := broadcastByID[key]; exists {
			return nil, fmt.Errorf("duplicate broadcast from participant %x", b.From)
		}
		if len(b.VerificationVector) != p.threshold {
			return nil, fmt.Errorf("participant %x sent a vector of length %d, want %d", b.From, len(b.VerificationVector), p.threshold)
		}
		broadcastByID[key] = b
	}

	secret := p.ownShare()
	defer secret.Zeroize()
	seen := make(map[string]bool, len(input.PrivateShares))
	for _, share := range input.PrivateShares {
		if !bytes.Equal(share.To, p.id) {
			return nil, fmt.Errorf("share from %x is addressed to %x", share.From, share.To)
		}
		if bytes.Equal(share.From, p.id) || seen[string(share.From)] {
			return nil, fmt.Errorf("unexpected share from participant %x", share.From)
		}
		seen[string(share.From)] = true

		sender, ok := broadcastByID[string(share.From)]
		if !ok {
			return nil, fmt.Errorf("missing broadcast from sender of private share %x", share.From)
		}
		if err := threshold.VerifyPrivateKeyShare(sender.VerificationVector, p.id, share.Share); err != nil {
			return nil, fmt.Errorf("invalid share from participant %x: %w", share.From, err)
		}
		secret.Add(secret, share.Share.Scalar())
	}

	vvec := make([]group.Point, p.threshold)
	for i := range vvec {
		vvec[i] = g1.NewPoint()
	}
	for _, b := range input.Broadcasts {
		for i, pk := range b.VerificationVector {
			vvec[i] = g1.NewPoint().Add(vvec[i], pk.Point())
		}
	}
	groupVvec := make([]*bls.PublicKey, len(vvec))
	for i, pt := range vvec {
		groupVvec[i] = bls.PublicKeyFromPoint(pt)
	}

	allPublicKeys, err := threshold.PublicKeyShares(groupVvec, p.allIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute member public keys: %w", err)
	}
	byID := make(map[string]*bls.PublicKey, len(p.allIDs))
	for i, id := range p.allIDs {
		byID[string(id)] = allPublicKeys[i]
	}

	sk := bls.PrivateKeyFromScalar(secret)
	pk := sk.PublicKey()
	if !pk.Equal(byID[string(p.id)]) {
		return nil, errors.New("key share does not match group verification vector")
	}

	p.keyShare = &KeyShare{
		ID:                 bytes.Clone(p.id),
		SecretKey:          sk,
		PublicKey:          pk,
		GroupKey:           groupVvec[0],
		VerificationVector: groupVvec,
	}
	p.finalized = true
	p.dealing = nil // clear dealing state, no longer needed

	return &DKGResult{
		KeyShare:      p.keyShare,
		GroupKey:      groupVvec[0],
		AllPublicKeys: byID,
	}, nil
}

// SetKeyShare allows setting a previously-saved key share.
// Use this when restoring a participant from persistent storage.
func (p *Participant) SetKeyShare(ks *KeyShare) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keyShare = ks
	p.finalized = true
	p.dealing = nil
}

// ownShare returns the share of this participant's own polynomial that
// it keeps for itself.
func (p *Participant) ownShare() group.Scalar {
	for i, id := range p.allIDs {
		if bytes.Equal(id, p.id) {
			return p.dealing.Shares[i].Scalar()
		}
	}
	return g1.NewScalar()
}

func containsID(ids [][]byte, id []byte) bool {
	for _, candidate := range ids {
		if bytes.Equal(candidate, id) {
			return true
		}
	}
	return false
}

func cloneIDs(ids [][]byte) [][]byte {
	out := make([][]byte, len(ids))
	for i, id := range ids {
		out[i] = bytes.Clone(id)
	}
	return out
}
