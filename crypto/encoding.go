package crypto

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Base58 string forms for keys and signatures. The envelope wire format
// reserves '!', ':' and '\n'; the Base58 alphabet contains none of them,
// so these strings can be embedded in an envelope without escaping.

// PublicKeyToString returns the Base58 string form of a public key.
func PublicKeyToString(pk PublicKey) string {
	return base58.Encode(pk[:])
}

// PublicKeyFromString parses the Base58 string form of a public key.
func PublicKeyFromString(s string) (PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(raw) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(raw), PublicKeySize)
	}

	var pk PublicKey
	copy(pk[:], raw)
	return pk, nil
}

// SignatureToString returns the Base58 string form of a signature.
func SignatureToString(sig Signature) string {
	return base58.Encode(sig[:])
}

// SignatureFromString parses the Base58 string form of a signature.
func SignatureFromString(s string) (Signature, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(raw) != SignatureSize {
		return Signature{}, fmt.Errorf("invalid signature length: got %d bytes, want %d", len(raw), SignatureSize)
	}

	var sig Signature
	copy(sig[:], raw)
	return sig, nil
}
