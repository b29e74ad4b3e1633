package envelope

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reserved wire characters. No field's string form may contain FieldSep or
// RecordTerm; sequence tags additionally exclude SequenceSep.
const (
	// FieldSep separates the metadata fields of an envelope.
	FieldSep = "!"
	// RecordTerm terminates the payload, directly before the metadata block.
	RecordTerm = "\n"
	// SequenceSep separates a sequence tag from its counter, and the
	// entries of a multi-recipient destination list.
	SequenceSep = ":"
	// NoneField is the wire sentinel for an absent optional field.
	NoneField = "None"
)

// ErrInvalidField indicates a field value that violates its validity rule.
// The error message names the offending field.
var ErrInvalidField = errors.New("invalid field")

// ErrInvalidSequenceNumber indicates a sequence number string that is not
// exactly "tag:counter" with a delimiter-free tag and non-negative counter.
var ErrInvalidSequenceNumber = errors.New("invalid sequence number")

// SequenceNumber names a position within an ordered message sequence.
// Counters within a tag must advance by exactly one per message; the first
// message of any sequence carries counter 0.
type SequenceNumber struct {
	Tag     string
	Counter uint64
}

// String returns the wire form "tag:counter".
func (s SequenceNumber) String() string {
	return s.Tag + SequenceSep + strconv.FormatUint(s.Counter, 10)
}

// ValidTimestamp reports whether a timestamp value is usable. Absent is
// valid; any finite value of any sign is valid.
func ValidTimestamp(ts *float64) bool {
	if ts == nil {
		return true
	}
	return !math.IsNaN(*ts) && !math.IsInf(*ts, 0)
}

// ValidExpiration reports whether an expiration value is usable. Absent is
// valid; a present value must be finite and non-negative.
func ValidExpiration(exp *float64) bool {
	if exp == nil {
		return true
	}
	return !math.IsNaN(*exp) && !math.IsInf(*exp, 0) && *exp >= 0
}

// ValidSequence reports whether a sequence number is usable. Absent is
// valid; a present tag must exclude the reserved wire characters.
func ValidSequence(seq *SequenceNumber) bool {
	if seq == nil {
		return true
	}
	return !strings.ContainsAny(seq.Tag, FieldSep+SequenceSep+RecordTerm)
}

// ValidDestination reports whether a destination is usable. Absent is
// valid; a present value must exclude '!' and '\n'. Colons are allowed:
// they separate the recipients of a multi-recipient destination.
func ValidDestination(dest *string) bool {
	if dest == nil {
		return true
	}
	return !strings.ContainsAny(*dest, FieldSep+RecordTerm)
}

// numberToString renders an optional numeric field. The 'g' format with -1
// precision is canonical: it round-trips exactly through ParseFloat and
// never produces a reserved character.
func numberToString(v *float64) string {
	if v == nil {
		return NoneField
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// TimestampToString returns the wire form of an optional timestamp.
func TimestampToString(ts *float64) string { return numberToString(ts) }

// ExpirationToString returns the wire form of an optional expiration.
func ExpirationToString(exp *float64) string { return numberToString(exp) }

// SequenceToString returns the wire form of an optional sequence number.
func SequenceToString(seq *SequenceNumber) string {
	if seq == nil {
		return NoneField
	}
	return seq.String()
}

// DestinationToString returns the wire form of an optional destination.
func DestinationToString(dest *string) string {
	if dest == nil {
		return NoneField
	}
	return *dest
}

// TimestampFromString parses the wire form of an optional timestamp.
func TimestampFromString(raw string) (*float64, error) {
	return numberFromString(raw, "timestamp")
}

// ExpirationFromString parses the wire form of an optional expiration.
func ExpirationFromString(raw string) (*float64, error) {
	exp, err := numberFromString(raw, "expiration")
	if err != nil {
		return nil, err
	}
	if !ValidExpiration(exp) {
		return nil, fmt.Errorf("%w: expiration %q is negative", ErrInvalidField, raw)
	}
	return exp, nil
}

func numberFromString(raw, field string) (*float64, error) {
	if raw == NoneField {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s %q is not numeric", ErrInvalidField, field, raw)
	}
	return &v, nil
}

// SequenceFromString parses the wire form of an optional sequence number.
// Anything other than "None" or exactly one ':' between a delimiter-free
// tag and a non-negative integer fails with ErrInvalidSequenceNumber.
func SequenceFromString(raw string) (*SequenceNumber, error) {
	if raw == NoneField {
		return nil, nil
	}

	if strings.Contains(raw, FieldSep) {
		return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidSequenceNumber, raw, FieldSep)
	}

	parts := strings.Split(raw, SequenceSep)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q does not contain exactly one %q", ErrInvalidSequenceNumber, raw, SequenceSep)
	}

	counter, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: counter %q is not a non-negative integer", ErrInvalidSequenceNumber, parts[1])
	}

	return &SequenceNumber{Tag: parts[0], Counter: counter}, nil
}

// DestinationFromString parses the wire form of an optional destination.
func DestinationFromString(raw string) *string {
	if raw == NoneField {
		return nil
	}
	dest := raw
	return &dest
}
