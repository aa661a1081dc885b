package bls

import "errors"

// Error kinds. Every failing operation in this module wraps exactly one
// of these (primitive failures additionally wrap ErrDecoding), so callers
// classify failures with errors.Is.
var (
	// ErrInputShape reports empty or mismatched-length input collections.
	ErrInputShape = errors.New("invalid input shape")

	// ErrDecoding reports a malformed or wrong-length byte buffer.
	ErrDecoding = errors.New("decoding failed")

	// ErrDomain reports an operation that is not defined for its input,
	// such as a hardened child requested from a public key.
	ErrDomain = errors.New("input outside operation domain")

	// ErrPrimitive reports a value rejected by the underlying curve library.
	ErrPrimitive = errors.New("curve primitive rejected value")
)
