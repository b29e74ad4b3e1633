package signeddata

import (
	"fmt"

	"github.com/opd-ai/signeddata/crypto"
	"github.com/opd-ai/signeddata/envelope"
)

// SignOptions carries the optional metadata fields of a signed message.
// The zero value signs an undirected, unsequenced, never-expiring message
// with no timestamp.
type SignOptions struct {
	// Timestamp orders this message relative to others from the same
	// signer. Any finite value, of any sign.
	Timestamp *float64
	// Expiration is the moment after which the message is stale. Must be
	// non-negative when present.
	Expiration *float64
	// Sequence positions the message in a named ordered sequence.
	Sequence *envelope.SequenceNumber
	// Destination is a colon-separated list of recipient identities.
	Destination *string
}

// Sign builds and signs an envelope around the payload. Field validity is
// checked first: a violation fails with an error wrapping
// envelope.ErrInvalidField naming the offending field, and unusable keys
// fail with crypto.ErrInvalidKey. These indicate caller bugs, not network
// conditions.
//
// The payload must not end with the '\n' record terminator: decoding
// strips exactly one trailing terminator, so a payload ending in one would
// not round-trip.
func Sign(payload []byte, keys *crypto.KeyPair, opts SignOptions) (string, error) {
	if keys == nil {
		return "", fmt.Errorf("%w: no key pair", crypto.ErrInvalidKey)
	}
	if keys.Public == (crypto.PublicKey{}) {
		return "", fmt.Errorf("%w: public key is all zeros", crypto.ErrInvalidKey)
	}

	if !envelope.ValidTimestamp(opts.Timestamp) {
		return "", fmt.Errorf("%w: timestamp", envelope.ErrInvalidField)
	}
	if !envelope.ValidExpiration(opts.Expiration) {
		return "", fmt.Errorf("%w: expiration", envelope.ErrInvalidField)
	}
	if !envelope.ValidSequence(opts.Sequence) {
		return "", fmt.Errorf("%w: sequence number", envelope.ErrInvalidField)
	}
	if !envelope.ValidDestination(opts.Destination) {
		return "", fmt.Errorf("%w: destination", envelope.ErrInvalidField)
	}

	prefix := envelope.EncodePrefix(payload, keys.Public,
		opts.Timestamp, opts.Expiration, opts.Sequence, opts.Destination)

	digest := crypto.MessageDigest([]byte(prefix))
	sig, err := crypto.SignDigest(digest, keys.Private)
	if err != nil {
		return "", err
	}

	return prefix + envelope.FieldSep + crypto.SignatureToString(sig), nil
}
