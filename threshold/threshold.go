package threshold

import (
	"crypto/sha256"
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
	"github.com/zipevo/bls-signatures/group"
)

// HashID returns SHA-256(label), a 32-byte ID suitable for naming a
// share holder by an arbitrary label.
func HashID(label []byte) []byte {
	sum := sha256.Sum256(label)
	return sum[:]
}

// PrivateKeyShare evaluates the polynomial whose coefficients are keys
// (constant term first) at the interpolation point of id.
func PrivateKeyShare(keys []*bls.PrivateKey, id []byte) (*bls.PrivateKey, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no private keys provided", bls.ErrInputShape)
	}
	if err := checkNonNil("private key", keys); err != nil {
		return nil, err
	}
	x, err := idPoint(id)
	if err != nil {
		return nil, err
	}
	coeffs := make([]group.Scalar, len(keys))
	for i, k := range keys {
		coeffs[i] = k.Scalar()
	}
	return bls.PrivateKeyFromScalar(evalScalars(coeffs, x)), nil
}

// PublicKeyShare evaluates the G1 polynomial whose coefficients are keys
// at the interpolation point of id. For keys[i] = sk[i]·G1 the result is
// the public key of PrivateKeyShare(sk, id).
func PublicKeyShare(keys []*bls.PublicKey, id []byte) (*bls.PublicKey, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no public keys provided", bls.ErrInputShape)
	}
	if err := checkNonNil("public key", keys); err != nil {
		return nil, err
	}
	x, err := idPoint(id)
	if err != nil {
		return nil, err
	}
	coeffs := make([]group.Point, len(keys))
	for i, k := range keys {
		coeffs[i] = k.Point()
	}
	return bls.PublicKeyFromPoint(evalPoints(g1, coeffs, x)), nil
}

// SignatureShare evaluates the G2 polynomial whose coefficients are sigs
// at the interpolation point of id.
func SignatureShare(sigs []*bls.Signature, id []byte) (*bls.Signature, error) {
	if len(sigs) == 0 {
		return nil, fmt.Errorf("%w: no signatures provided", bls.ErrInputShape)
	}
	if err := checkNonNil("signature", sigs); err != nil {
		return nil, err
	}
	x, err := idPoint(id)
	if err != nil {
		return nil, err
	}
	coeffs := make([]group.Point, len(sigs))
	for i, s := range sigs {
		coeffs[i] = s.Point()
	}
	return bls.SignatureFromPoint(evalPoints(g2, coeffs, x)), nil
}

// PrivateKeyRecover interpolates the shared secret from shares, where
// shares[i] was issued for ids[i].
//
// Recovery has no notion of a threshold. Given fewer shares than the
// polynomial degree requires it returns a well-defined but unrelated key;
// callers that know the threshold must check the share count themselves.
func PrivateKeyRecover(shares []*bls.PrivateKey, ids [][]byte) (*bls.PrivateKey, error) {
	if err := checkRecoverShape("private key shares", len(shares), len(ids)); err != nil {
		return nil, err
	}
	if err := checkNonNil("private key share", shares); err != nil {
		return nil, err
	}
	ys := make([]group.Scalar, len(shares))
	for i, s := range shares {
		ys[i] = s.Scalar()
	}
	secret, err := interpolateScalars(ys, ids)
	if err != nil {
		return nil, err
	}
	return bls.PrivateKeyFromScalar(secret), nil
}

// PublicKeyRecover interpolates the shared public key from G1 shares.
func PublicKeyRecover(shares []*bls.PublicKey, ids [][]byte) (*bls.PublicKey, error) {
	if err := checkRecoverShape("public key shares", len(shares), len(ids)); err != nil {
		return nil, err
	}
	if err := checkNonNil("public key share", shares); err != nil {
		return nil, err
	}
	ys := make([]group.Point, len(shares))
	for i, s := range shares {
		ys[i] = s.Point()
	}
	p, err := interpolatePoints(g1, ys, ids)
	if err != nil {
		return nil, err
	}
	return bls.PublicKeyFromPoint(p), nil
}

// SignatureRecover interpolates a full signature from signature shares,
// where shares[i] was produced with the key share issued for ids[i].
func SignatureRecover(shares []*bls.Signature, ids [][]byte) (*bls.Signature, error) {
	if err := checkRecoverShape("signature shares", len(shares), len(ids)); err != nil {
		return nil, err
	}
	if err := checkNonNil("signature share", shares); err != nil {
		return nil, err
	}
	ys := make([]group.Point, len(shares))
	for i, s := range shares {
		ys[i] = s.Point()
	}
	p, err := interpolatePoints(g2, ys, ids)
	if err != nil {
		return nil, err
	}
	return bls.SignatureFromPoint(p), nil
}

// Sign signs msg with a full or share private key.
func Sign(sk *bls.PrivateKey, msg []byte) (*bls.Signature, error) {
	return bls.Sign(sk, msg)
}

// Verify reports whether sig is valid for msg under pk.
func Verify(pk *bls.PublicKey, msg []byte, sig *bls.Signature) bool {
	return bls.Verify(pk, msg, sig)
}
