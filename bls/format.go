package bls

import "fmt"

// Format selects a point serialization convention for public keys and
// signatures.
type Format int

const (
	// FormatStandard is the ZCash compressed encoding: bit 7 of the first
	// byte flags compression, bit 6 the point at infinity, bit 5 the sign
	// of y. G2 points write the c1 half of x first.
	FormatStandard Format = iota

	// FormatLegacy is the pre-standard encoding used by early deployments:
	// bit 7 of the first byte carries the sign of y, there is no
	// compression flag and the point at infinity is all zero bytes.
	// G2 points write the c0 half of x first.
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatStandard:
		return "standard"
	case FormatLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

const (
	flagCompressed = 0x80
	flagInfinity   = 0x40
	flagSign       = 0x20
	flagMask       = 0xe0

	legacySign = 0x80
)

// standardToLegacy rewrites a standard compressed G1 or G2 encoding in
// the legacy convention. The input is not modified.
func standardToLegacy(std []byte) []byte {
	out := make([]byte, len(std))
	if std[0]&flagInfinity != 0 {
		return out
	}
	copy(out, std)
	out[0] &^= flagMask
	if len(out) == SignatureSize {
		swapHalves(out)
	}
	if std[0]&flagSign != 0 {
		out[0] |= legacySign
	}
	return out
}

// legacyToStandard rewrites a legacy G1 or G2 encoding so the result can
// be decoded as a standard compressed point.
func legacyToStandard(legacy []byte) ([]byte, error) {
	if legacy[0]&^legacySign&flagMask != 0 {
		return nil, fmt.Errorf("%w: legacy encoding has reserved bits set", ErrDecoding)
	}
	if len(legacy) == SignatureSize && legacy[SignatureSize/2]&flagMask != 0 {
		return nil, fmt.Errorf("%w: legacy encoding has reserved bits set", ErrDecoding)
	}
	out := make([]byte, len(legacy))
	if isZero(legacy) {
		out[0] = flagCompressed | flagInfinity
		return out, nil
	}
	copy(out, legacy)
	out[0] &^= legacySign
	if len(out) == SignatureSize {
		swapHalves(out)
	}
	out[0] |= flagCompressed
	if legacy[0]&legacySign != 0 {
		out[0] |= flagSign
	}
	return out, nil
}

// swapHalves exchanges the two Fp halves of a G2 x coordinate in place.
func swapHalves(b []byte) {
	h := len(b) / 2
	for i := 0; i < h; i++ {
		b[i], b[i+h] = b[i+h], b[i]
	}
}

func isZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
