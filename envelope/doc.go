// Package envelope implements the wire codec for signeddata messages.
//
// A signed message is a single text envelope:
//
//	<payload>"\n!"<pubkey>"!"<timestamp>"!"<expiration>"!"<sequence>"!"<destination>"!"<signature>
//
// The field separator is '!', the record terminator between payload and
// metadata is a single '\n', and the sequence tag/counter separator is ':'.
// An absent optional field is the literal string "None". Because the framing
// is delimiter-based and decoding splits from the right, every field's
// string form must exclude the reserved characters; the validity predicates
// in this package enforce that.
//
// Decoding is split into three operations:
//
//   - [DecodeSigned] parses a full signed envelope into an [Envelope].
//   - [SplitSignature] separates the raw payload from the metadata trailer
//     without parsing any field.
//   - [DecodeTrailer] parses a metadata trailer on its own, for callers
//     that kept only the trailing signature block of an earlier message.
//
// Sequence numbers are (tag, counter) pairs; [ValidTransition] decides
// whether advancing from one sequence state to another is legitimate.
//
// All functions are pure and safe for concurrent use.
package envelope
