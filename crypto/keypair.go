package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
)

// PublicKeySize is the size of an Ed25519 public key in bytes.
const PublicKeySize = ed25519.PublicKeySize

// PrivateKeySize is the size of a seed-form Ed25519 private key in bytes.
const PrivateKeySize = ed25519.SeedSize

// PublicKey is an Ed25519 public key.
type PublicKey [PublicKeySize]byte

// PrivateKey is an Ed25519 private key in seed form. The full 64-byte
// signing key is derived on demand with ed25519.NewKeyFromSeed.
type PrivateKey [PrivateKeySize]byte

// ErrInvalidKey indicates a key that is absent, all zeros, or of the
// wrong length.
var ErrInvalidKey = errors.New("invalid key")

// KeyPair holds an Ed25519 key pair used to sign and verify envelopes.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// GenerateKeyPair creates a new random Ed25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	kp := &KeyPair{}
	copy(kp.Public[:], pub)
	copy(kp.Private[:], priv.Seed())

	return kp, nil
}

// FromSeed creates a key pair from an existing seed-form private key.
func FromSeed(seed PrivateKey) (*KeyPair, error) {
	if isZeroKey(seed[:]) {
		return nil, fmt.Errorf("%w: seed is all zeros", ErrInvalidKey)
	}

	priv := ed25519.NewKeyFromSeed(seed[:])

	kp := &KeyPair{Private: seed}
	copy(kp.Public[:], priv.Public().(ed25519.PublicKey))

	return kp, nil
}

// isZeroKey checks if key material consists of all zeros.
func isZeroKey(key []byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
