package crypto

import "golang.org/x/crypto/blake2b"

// DigestSize is the size of a message digest in bytes.
const DigestSize = blake2b.Size256

// Digest is a fixed-size BLAKE2b-256 digest of a canonical envelope prefix.
type Digest [DigestSize]byte

// MessageDigest computes the digest of arbitrary bytes.
func MessageDigest(data []byte) Digest {
	return blake2b.Sum256(data)
}
