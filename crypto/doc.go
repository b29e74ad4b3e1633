// Package crypto implements the signing primitives for the signeddata protocol.
//
// This package provides Ed25519 key pairs in seed form, BLAKE2b-256 message
// digests, digest signing and verification, and delimiter-free Base58 string
// codecs for public keys and signatures. The wire format of the signeddata
// envelope reserves '!', ':' and '\n', so every string form produced here is
// guaranteed to exclude them.
//
// # Core Types
//
//   - [KeyPair]: Ed25519 key pair with a 32-byte seed-form private key
//   - [Digest]: BLAKE2b-256 digest of a canonical envelope prefix
//   - [Signature]: Ed25519 signature over a digest
//   - [VerifyResult]: closed set of verification outcomes
//
// # Signing and Verification
//
// Signing always operates on a digest of the canonical envelope prefix,
// never on the raw payload:
//
//	digest := crypto.MessageDigest([]byte(prefix))
//	sig, err := crypto.SignDigest(digest, keys.Private)
//
// Verification returns a typed result rather than an error, so callers can
// distinguish a bad key from a bad signature without inspecting error text:
//
//	switch crypto.VerifyDigest(digest, sig, pub) {
//	case crypto.VerifyOK:
//	    // signature matches
//	case crypto.VerifyBadKey, crypto.VerifyBadSignature:
//	    // treat as not verified
//	}
//
// # Thread Safety
//
// All functions in this package are pure and safe for concurrent use.
package crypto
