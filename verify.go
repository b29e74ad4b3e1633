package signeddata

import (
	"github.com/opd-ai/signeddata/crypto"
	"github.com/opd-ai/signeddata/envelope"
)

// Verify checks the signature of a signed envelope. When expected is
// non-nil, the embedded public key must also match it.
//
// Verify is total over arbitrary byte input: malformed text, undecodable
// keys or signatures, and cryptographic mismatches all resolve to false.
// Only the split counts and the key and signature fields are examined;
// an envelope with an unparseable timestamp can still verify, exactly as
// it was signed.
func Verify(signedText string, expected *crypto.PublicKey) bool {
	prefix, pubkeyRaw, sigRaw, ok := envelope.SplitSigned(signedText)
	if !ok {
		return false
	}

	embedded, err := crypto.PublicKeyFromString(pubkeyRaw)
	if err != nil {
		return false
	}

	if expected != nil && embedded != *expected {
		return false
	}

	sig, err := crypto.SignatureFromString(sigRaw)
	if err != nil {
		return false
	}

	digest := crypto.MessageDigest([]byte(prefix))
	return crypto.VerifyDigest(digest, sig, embedded) == crypto.VerifyOK
}
