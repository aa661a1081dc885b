// Package hd implements hierarchical deterministic derivation of BLS
// key pairs in the style of BIP32.
//
// A root [ExtendedPrivateKey] is derived from a seed with HMAC-SHA256
// keyed by "BLS HD seed". Each child is derived from its parent's chain
// code and either the parent's private scalar (hardened indices, at or
// above [HardenedOffset]) or its public key (normal indices). Child private
// keys are the parent key plus the derived tweak, so normal children of an
// [ExtendedPublicKey] agree with the public keys of the corresponding
// private children.
//
// Every extended key carries a [Mode]. The mode selects the G1 encoding
// that feeds normal derivation, fingerprints and public key serialization,
// and is inherited by children:
//
//	root, _ := hd.NewExtendedPrivateKeyFromSeed(seed, hd.ModeLegacy)
//	path, _ := hd.ParsePath("m/12381'/3600'/0/0")
//	leaf, _ := root.DerivePath(path)
//
// Serialized extended keys are 77 bytes (private) and 93 bytes (public):
// version, depth, parent fingerprint and child number followed by the
// chain code and the key.
package hd
