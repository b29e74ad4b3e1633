package signeddata

import "fmt"

// Severity classifies the weight a comment carries in the final verdict.
type Severity uint8

const (
	// SeverityFatal comments alone force VerdictUntrusted.
	SeverityFatal Severity = iota
	// SeverityWarning comments alone yield VerdictIndeterminate.
	SeverityWarning
)

// Comment is a finding produced while evaluating a signed message. The set
// is closed: every variant carries a compile-time severity, so adding a
// comment kind without classifying it is impossible.
type Comment uint8

const (
	// CommentMalformedMessage means the text does not parse as an envelope.
	CommentMalformedMessage Comment = iota
	// CommentWrongPublicKey means the embedded key differs from the expected one.
	CommentWrongPublicKey
	// CommentBadSignature means signature verification failed.
	CommentBadSignature
	// CommentExpired means the expiration bound has passed.
	CommentExpired
	// CommentCannotCheckExpiration means the clock was unavailable.
	CommentCannotCheckExpiration
	// CommentNotDestinedForMe means the destination excludes this node.
	CommentNotDestinedForMe
	// CommentInvalidSequenceTransition means the sequence advance is illegitimate.
	CommentInvalidSequenceTransition
	// CommentTimestampsOutOfOrder means the new timestamp precedes the old one.
	CommentTimestampsOutOfOrder
	// CommentTimestampsMatch means both timestamps are present and equal.
	CommentTimestampsMatch
)

// Severity returns the weight of the comment. Warnings are exactly
// CommentTimestampsMatch and CommentCannotCheckExpiration; everything else
// is fatal.
func (c Comment) Severity() Severity {
	switch c {
	case CommentTimestampsMatch, CommentCannotCheckExpiration:
		return SeverityWarning
	default:
		return SeverityFatal
	}
}

// String returns the human-readable tag for the comment.
func (c Comment) String() string {
	switch c {
	case CommentMalformedMessage:
		return "Malformed signed data"
	case CommentWrongPublicKey:
		return "Different public key"
	case CommentBadSignature:
		return "Bad signature"
	case CommentExpired:
		return "Expired signature"
	case CommentCannotCheckExpiration:
		return "Cannot check expiration"
	case CommentNotDestinedForMe:
		return "Not destined for this node"
	case CommentInvalidSequenceTransition:
		return "Invalid sequence transition"
	case CommentTimestampsOutOfOrder:
		return "Timestamps out of order"
	case CommentTimestampsMatch:
		return "Timestamps match"
	default:
		return fmt.Sprintf("Unknown comment (%d)", uint8(c))
	}
}

// Verdict is the tri-state outcome of a trust evaluation.
type Verdict uint8

const (
	// VerdictTrusted means every check passed.
	VerdictTrusted Verdict = iota
	// VerdictUntrusted means at least one fatal finding was made.
	VerdictUntrusted
	// VerdictIndeterminate means only warnings were found; the caller
	// decides.
	VerdictIndeterminate
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictTrusted:
		return "trusted"
	case VerdictUntrusted:
		return "untrusted"
	case VerdictIndeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(v))
	}
}
