package crypto

import (
	"crypto/ed25519"
	"fmt"
)

// SignatureSize is the size of an Ed25519 signature in bytes.
const SignatureSize = ed25519.SignatureSize

// Signature is an Ed25519 signature over a message digest.
type Signature [SignatureSize]byte

// VerifyResult is the outcome of a signature verification. It is a closed
// set: callers never need to inspect error text to learn why verification
// failed.
type VerifyResult uint8

const (
	// VerifyOK means the signature matches the digest and public key.
	VerifyOK VerifyResult = iota
	// VerifyBadKey means the public key is unusable (all zeros).
	VerifyBadKey
	// VerifyBadSignature means the signature does not match.
	VerifyBadSignature
)

// String returns a human-readable name for the verification result.
func (r VerifyResult) String() string {
	switch r {
	case VerifyOK:
		return "ok"
	case VerifyBadKey:
		return "bad key"
	case VerifyBadSignature:
		return "bad signature"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}

// SignDigest signs a message digest with a seed-form private key.
func SignDigest(digest Digest, privateKey PrivateKey) (Signature, error) {
	if isZeroKey(privateKey[:]) {
		return Signature{}, fmt.Errorf("%w: private key is all zeros", ErrInvalidKey)
	}

	priv := ed25519.NewKeyFromSeed(privateKey[:])
	raw := ed25519.Sign(priv, digest[:])

	var sig Signature
	copy(sig[:], raw)

	return sig, nil
}

// VerifyDigest checks a signature against a digest and public key. It is
// total: any input, however malformed, resolves to a result rather than a
// panic or error.
func VerifyDigest(digest Digest, signature Signature, publicKey PublicKey) VerifyResult {
	if isZeroKey(publicKey[:]) {
		return VerifyBadKey
	}

	if !ed25519.Verify(publicKey[:], digest[:], signature[:]) {
		return VerifyBadSignature
	}

	return VerifyOK
}
