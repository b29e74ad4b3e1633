package signeddata

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/signeddata/clock"
	"github.com/opd-ai/signeddata/crypto"
	"github.com/opd-ai/signeddata/envelope"
)

// Evaluator combines the signature, freshness, sequence, and destination
// checks into trust verdicts. It holds the node context the checks need:
// the local identity for destination matching and the clock source for
// freshness.
//
// An Evaluator is safe for concurrent use. The identity is set rarely (at
// startup or on identity rotation) and read on every evaluation, so it is
// published atomically.
type Evaluator struct {
	identity atomic.Value // string
	clock    clock.Source
	logger   *logrus.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock sets the clock source used by freshness checks.
func WithClock(src clock.Source) Option {
	return func(e *Evaluator) { e.clock = src }
}

// WithLogger sets the logger used to report evaluation findings.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// NewEvaluator creates an Evaluator with no identity, the system clock,
// and the standard logger.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		clock:  clock.System{},
		logger: logrus.StandardLogger(),
	}
	e.identity.Store("")
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetIdentity publishes the local node identity used for destination
// matching. An empty identity makes the node reject all directed messages.
func (e *Evaluator) SetIdentity(identity string) {
	e.identity.Store(identity)
}

// Identity returns the currently published node identity.
func (e *Evaluator) Identity() string {
	return e.identity.Load().(string)
}

// Comments evaluates a single signed message, independent of any prior
// one, and returns the findings in check order. Sequence and timestamp
// ordering need a previous message and are not examined here.
func (e *Evaluator) Comments(signedText string, expected *crypto.PublicKey) []Comment {
	env, err := envelope.DecodeSigned(signedText)
	if err != nil {
		return []Comment{CommentMalformedMessage}
	}

	var comments []Comment

	if expected != nil && env.PublicKey != *expected {
		comments = append(comments, CommentWrongPublicKey)
	}

	if !Verify(signedText, expected) {
		comments = append(comments, CommentBadSignature)
	}

	current, err := IsCurrent(env.Expiration, e.clock)
	switch {
	case err != nil:
		comments = append(comments, CommentCannotCheckExpiration)
	case !current:
		comments = append(comments, CommentExpired)
	}

	if env.Destination != nil && !DestinedForMe(env.Destination, e.Identity()) {
		comments = append(comments, CommentNotDestinedForMe)
	}

	return comments
}

// ShouldTrust evaluates a new signed message, optionally against the
// previously accepted one, and returns a verdict with its justification.
// An empty oldMessage means there is no prior message; otherwise it must
// be a full signed envelope. Message history beyond that single reference
// is the caller's concern.
//
// The verdict is VerdictTrusted with no comments when every check passes,
// VerdictUntrusted when any fatal finding is present, and
// VerdictIndeterminate when only warnings were found.
func (e *Evaluator) ShouldTrust(oldMessage, newMessage string, expected *crypto.PublicKey) (Verdict, []Comment) {
	return e.evaluate(oldMessage, newMessage, expected, true)
}

// ShouldTrustMeta is ShouldTrust for callers that kept only the metadata
// trailer of the previously accepted message (see
// envelope.SplitSignature). The old payload is not re-examined.
func (e *Evaluator) ShouldTrustMeta(oldTrailer, newMessage string, expected *crypto.PublicKey) (Verdict, []Comment) {
	return e.evaluate(oldTrailer, newMessage, expected, false)
}

func (e *Evaluator) evaluate(oldMessage, newMessage string, expected *crypto.PublicKey, oldIsFullMessage bool) (Verdict, []Comment) {
	if !Verify(newMessage, expected) {
		e.logFindings(VerdictUntrusted, []Comment{CommentBadSignature})
		return VerdictUntrusted, []Comment{CommentBadSignature}
	}

	comments := e.Comments(newMessage, expected)

	if oldMessage != "" {
		comments = append(comments, e.pairComments(oldMessage, newMessage, oldIsFullMessage)...)
	}

	verdict := classify(comments)
	e.logFindings(verdict, comments)
	return verdict, comments
}

// pairComments produces the findings that need both messages: the
// sequence transition and the timestamp ordering.
func (e *Evaluator) pairComments(oldMessage, newMessage string, oldIsFullMessage bool) []Comment {
	newEnv, err := envelope.DecodeSigned(newMessage)
	if err != nil {
		// Comments already reported the new message as malformed.
		return nil
	}

	var oldEnv *envelope.Envelope
	if oldIsFullMessage {
		oldEnv, err = envelope.DecodeSigned(oldMessage)
	} else {
		oldEnv, err = envelope.DecodeTrailer(oldMessage)
	}
	if err != nil {
		return []Comment{CommentMalformedMessage}
	}

	var comments []Comment

	if !envelope.ValidTransition(oldEnv.Sequence, newEnv.Sequence) {
		comments = append(comments, CommentInvalidSequenceTransition)
	}

	// An absent timestamp sorts before every concrete one. Strict
	// increase is clean, equality of concrete timestamps is a warning,
	// any decrease is an ordering violation.
	oldTime, newTime := oldEnv.Timestamp, newEnv.Timestamp
	switch {
	case oldTime == nil:
		// Nothing to order against.
	case newTime == nil, *oldTime > *newTime:
		comments = append(comments, CommentTimestampsOutOfOrder)
	case *oldTime == *newTime:
		comments = append(comments, CommentTimestampsMatch)
	}

	return comments
}

// classify folds the findings into a verdict: fatal beats warning beats
// clean.
func classify(comments []Comment) Verdict {
	if len(comments) == 0 {
		return VerdictTrusted
	}
	for _, c := range comments {
		if c.Severity() == SeverityFatal {
			return VerdictUntrusted
		}
	}
	return VerdictIndeterminate
}

func (e *Evaluator) logFindings(verdict Verdict, comments []Comment) {
	if verdict == VerdictTrusted {
		return
	}

	tags := make([]string, len(comments))
	for i, c := range comments {
		tags[i] = c.String()
	}

	entry := e.logger.WithFields(logrus.Fields{
		"verdict":  verdict.String(),
		"comments": tags,
	})
	if verdict == VerdictUntrusted {
		entry.Warn("Signed message rejected")
	} else {
		entry.Debug("Signed message needs caller discretion")
	}
}
