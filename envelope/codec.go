package envelope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opd-ai/signeddata/crypto"
)

// ErrMalformedMessage indicates wire text that does not split into the
// expected fields, or a field that does not parse.
var ErrMalformedMessage = errors.New("malformed signed data")

// Envelope is the decoded form of a signed message. It is constructed once
// by the codec and never mutated; producing a new sequence step means
// signing a brand-new envelope.
type Envelope struct {
	// Payload is the protected application data. It is nil when the
	// envelope was decoded from a metadata trailer only.
	Payload []byte
	// PublicKey is the signer's public key.
	PublicKey crypto.PublicKey
	// Timestamp orders messages; nil means unspecified and sorts before
	// every concrete timestamp.
	Timestamp *float64
	// Expiration bounds freshness; nil means the message never expires.
	Expiration *float64
	// Sequence positions the message in a named sequence; nil means
	// unsequenced.
	Sequence *SequenceNumber
	// Destination is a colon-separated recipient list; nil means
	// broadcast.
	Destination *string
	// Signature is the Base58 signature string exactly as it appeared on
	// the wire.
	Signature string
}

// fieldCount is the number of '!'-separated parts of a signed envelope:
// payload+terminator, public key, timestamp, expiration, sequence,
// destination, signature.
const fieldCount = 7

// EncodePrefix builds the canonical unsigned prefix of an envelope: the
// exact bytes that get digested and signed. The signature field is not
// included; signing appends it.
func EncodePrefix(payload []byte, pub crypto.PublicKey, ts, exp *float64, seq *SequenceNumber, dest *string) string {
	var b strings.Builder
	b.Write(payload)
	b.WriteString(RecordTerm)
	b.WriteString(FieldSep)
	b.WriteString(crypto.PublicKeyToString(pub))
	b.WriteString(FieldSep)
	b.WriteString(TimestampToString(ts))
	b.WriteString(FieldSep)
	b.WriteString(ExpirationToString(exp))
	b.WriteString(FieldSep)
	b.WriteString(SequenceToString(seq))
	b.WriteString(FieldSep)
	b.WriteString(DestinationToString(dest))
	return b.String()
}

// DecodeSigned parses a full signed envelope. The text must split, from
// the right, into exactly seven '!'-separated parts, with the payload part
// ending in the '\n' record terminator. Field contents are decoded with
// the inverse of their string forms; any failure yields an error wrapping
// ErrMalformedMessage or ErrInvalidSequenceNumber.
func DecodeSigned(text string) (*Envelope, error) {
	parts, ok := rsplit(text, FieldSep, fieldCount-1)
	if !ok {
		return nil, fmt.Errorf("%w: expected %d fields", ErrMalformedMessage, fieldCount)
	}

	payloadPart := parts[0]
	if !strings.HasSuffix(payloadPart, RecordTerm) {
		return nil, fmt.Errorf("%w: missing record terminator", ErrMalformedMessage)
	}

	env, err := decodeFields(parts[1], parts[2], parts[3], parts[4], parts[5], parts[6])
	if err != nil {
		return nil, err
	}
	env.Payload = []byte(strings.TrimSuffix(payloadPart, RecordTerm))

	return env, nil
}

// SplitSignature separates a signed envelope into the raw payload and the
// '!'-prefixed metadata trailer, without parsing any field. Callers use it
// to keep the trailer as a compact record of a previously accepted
// message.
func SplitSignature(text string) (payload, trailer string, err error) {
	idx := strings.LastIndex(text, RecordTerm)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: missing record terminator", ErrMalformedMessage)
	}
	return text[:idx], text[idx+1:], nil
}

// DecodeTrailer parses a metadata trailer produced by SplitSignature:
// "!"<pubkey>"!"<timestamp>"!"<expiration>"!"<sequence>"!"<destination>"!"<signature>.
// The returned envelope carries a nil payload.
func DecodeTrailer(trailer string) (*Envelope, error) {
	parts, ok := rsplit(trailer, FieldSep, fieldCount-2)
	if !ok {
		return nil, fmt.Errorf("%w: expected %d trailer fields", ErrMalformedMessage, fieldCount-1)
	}

	// The trailer begins with the separator that followed the record
	// terminator, so the first part is "!" + public key.
	if !strings.HasPrefix(parts[0], FieldSep) {
		return nil, fmt.Errorf("%w: trailer does not start with %q", ErrMalformedMessage, FieldSep)
	}

	return decodeFields(strings.TrimPrefix(parts[0], FieldSep), parts[1], parts[2], parts[3], parts[4], parts[5])
}

func decodeFields(pkRaw, tsRaw, expRaw, seqRaw, destRaw, sigRaw string) (*Envelope, error) {
	pub, err := crypto.PublicKeyFromString(pkRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	ts, err := TimestampFromString(tsRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	exp, err := ExpirationFromString(expRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	seq, err := SequenceFromString(seqRaw)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		PublicKey:   pub,
		Timestamp:   ts,
		Expiration:  exp,
		Sequence:    seq,
		Destination: DestinationFromString(destRaw),
		Signature:   sigRaw,
	}, nil
}

// SplitSigned separates a signed envelope into the canonical unsigned
// prefix (the exact bytes the signature covers), the raw embedded public
// key string, and the raw signature string, without parsing any other
// field. It reports false when the text does not have the expected field
// count or lacks the record terminator.
func SplitSigned(text string) (prefix, pubkeyRaw, sigRaw string, ok bool) {
	parts, ok := rsplit(text, FieldSep, fieldCount-1)
	if !ok {
		return "", "", "", false
	}
	if !strings.HasSuffix(parts[0], RecordTerm) {
		return "", "", "", false
	}
	sigRaw = parts[fieldCount-1]
	prefix = strings.TrimSuffix(text, FieldSep+sigRaw)
	return prefix, parts[1], sigRaw, true
}

// rsplit splits s on exactly n occurrences of sep, counted from the right,
// yielding n+1 parts. It reports false when s contains fewer than n
// separators. Splitting from the right lets the payload contain the
// separator freely.
func rsplit(s, sep string, n int) ([]string, bool) {
	parts := make([]string, n+1)
	for i := n; i > 0; i-- {
		idx := strings.LastIndex(s, sep)
		if idx < 0 {
			return nil, false
		}
		parts[i] = s[idx+len(sep):]
		s = s[:idx]
	}
	parts[0] = s
	return parts, true
}
