// Package signeddata produces and verifies authenticated, replay-resistant,
// freshness-bounded, directed messages between nodes that do not trust the
// network.
//
// The protocol defends against four attacks:
//
//   - Replay: resubmitting a previously valid signed message to trigger an
//     old action again.
//   - Freeze: a man-in-the-middle withholding newer signed messages and
//     re-serving stale ones.
//   - Out of sequence: delivering messages out of their intended order, or
//     skipping required steps.
//   - Misdelivery: a message intended for one recipient being accepted by
//     another.
//
// # Wire Format
//
// A signed message is a single text envelope:
//
//	<payload>"\n!"<pubkey>"!"<timestamp>"!"<expiration>"!"<sequence>"!"<destination>"!"<signature>
//
// The signature covers everything before it: the digest of the unsigned
// prefix is signed with the sender's Ed25519 key. See the envelope
// subpackage for the codec and the crypto subpackage for the primitives.
//
// # Signing and Verifying
//
//	keys, _ := crypto.GenerateKeyPair()
//	signed, err := signeddata.Sign([]byte("launch"), keys, signeddata.SignOptions{
//	    Sequence: &envelope.SequenceNumber{Tag: "deploy", Counter: 0},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok := signeddata.Verify(signed, &keys.Public)
//
// Verify is total over arbitrary input: malformed text is a routine network
// occurrence and resolves to false, never a panic or error.
//
// # Trust Evaluation
//
// An [Evaluator] combines signature, freshness, sequence, and destination
// checks over a (previous, new) message pair into a tri-state [Verdict]
// with justifying [Comment] tags:
//
//	eval := signeddata.NewEvaluator()
//	eval.SetIdentity("node1")
//
//	verdict, comments := eval.ShouldTrust(previous, incoming, &keys.Public)
//	switch verdict {
//	case signeddata.VerdictTrusted:
//	    // act on the message
//	case signeddata.VerdictIndeterminate:
//	    // warnings only; caller discretion
//	case signeddata.VerdictUntrusted:
//	    // reject; comments explain why
//	}
//
// Each comment carries a compile-time [Severity]: any fatal comment forces
// VerdictUntrusted, warnings alone yield VerdictIndeterminate.
//
// # Error Tiers
//
// Malformed construction requests (bad field values handed to Sign, bad
// sequence strings handed to decoders) indicate a caller bug and fail
// loudly with ErrInvalidField, crypto.ErrInvalidKey, or
// envelope.ErrInvalidSequenceNumber. Anything arriving over the wire never
// raises: it resolves to a boolean or a verdict with comments. The one
// exception is clock unavailability, which IsCurrent propagates after a
// single resync attempt; the Evaluator converts it to the
// CannotCheckExpiration warning.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The only shared mutable
// state is the Evaluator's node identity, which is published atomically,
// and the clock source's internal synchronization.
package signeddata
