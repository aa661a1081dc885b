package hd

import (
	"fmt"

	"github.com/zipevo/bls-signatures/bls"
)

// Mode selects the public key encoding that feeds normal derivation,
// fingerprints and extended public key serialization. Keys created in
// one mode derive children in the same mode.
type Mode int

const (
	// ModeStandard uses the ZCash compressed G1 encoding.
	ModeStandard Mode = iota
	// ModeLegacy uses the pre-standard G1 encoding of early HD trees.
	ModeLegacy
)

// ParseMode maps "standard" and "legacy" to their Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "standard":
		return ModeStandard, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return 0, fmt.Errorf("%w: unknown derivation mode %q", bls.ErrDecoding, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Format returns the public key encoding used by m.
func (m Mode) Format() bls.Format {
	if m == ModeLegacy {
		return bls.FormatLegacy
	}
	return bls.FormatStandard
}

func (m Mode) valid() bool {
	return m == ModeStandard || m == ModeLegacy
}
