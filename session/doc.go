// Package session provides a high-level API for threshold BLS ceremonies.
// It wraps the primitives in the [threshold] package with an interface
// that manages round state and enforces the signing threshold.
//
// # Key Generation Ceremony
//
// A dealer-free key generation ceremony creates key shares for all
// participants. Each participant deals a random polynomial to the others
// and sums what it receives. Each participant runs the same code
// independently:
//
//	// Create participant state
//	p, err := session.NewParticipant(myID, threshold, total)
//	if err != nil {
//		return err
//	}
//
//	// Generate round 1 messages
//	r1, err := p.GenerateRound1(rand.Reader, allIDs)
//	if err != nil {
//		return err
//	}
//
//	// Broadcast r1.Broadcast to all participants
//	// Send r1.PrivateShares[string(id)] to each participant over secure channel
//
//	// After receiving messages from all other participants:
//	result, err := p.ProcessRound1(&session.Round1Input{
//		Broadcasts:    receivedBroadcasts,
//		PrivateShares: receivedShares,
//	})
//
//	// Store result.KeyShare securely
//
// # Signing
//
// BLS signature shares need no interaction between signers:
//
//	share, err := p.SignShare(message)
//
//	// Coordinator collects at least threshold shares
//	sig, err := session.Recover(threshold, shares)
//	err = session.Verify(result.GroupKey, message, sig)
//
// Unlike the threshold package, Recover refuses fewer shares than the
// threshold and shares with repeated IDs.
//
// # Transport Agnostic
//
// This package does not handle network communication. You are responsible
// for distributing messages between participants using your preferred
// transport (TCP, HTTP, libp2p, etc.). The package only manages protocol
// state and message generation.
package session
