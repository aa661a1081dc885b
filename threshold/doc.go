// Package threshold implements Shamir sharing of BLS keys and signatures
// and their recovery by Lagrange interpolation.
//
// A sharing instance is a polynomial of degree t-1 given by its t
// coefficients, constant term first. The constant term is the secret.
// Each share holder is named by an ID, an arbitrary byte string whose
// big-endian value modulo the group order is the holder's interpolation
// point. IDs must map to distinct, non-zero points.
//
// Because interpolation is linear it commutes with the maps sk -> sk·G1
// and sk -> sk·H(m). The same polynomial can therefore be evaluated and
// recovered over private keys, public keys (G1) and signatures (G2):
//
//	shares, _ := threshold.PrivateKeyShares(coeffs, ids)
//	sigShare, _ := threshold.Sign(shares[0], msg)
//	...
//	sig, _ := threshold.SignatureRecover(sigShares[:t], ids[:t])
//	ok := threshold.Verify(groupKey, msg, sig)
//
// Recovery does not know t. Passing fewer than t shares yields a valid
// but unrelated value; the session package enforces the threshold.
//
// All functions are pure and safe for concurrent use. Errors wrap the
// kinds defined in package bls.
package threshold
