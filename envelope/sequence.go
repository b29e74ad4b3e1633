package envelope

// ValidTransition decides whether advancing from sequence state old to new
// is legitimate. It is a pure function: the caller supplies whatever old
// state it considers authoritative, typically the sequence field of the
// last message it accepted.
//
// An unsequenced new message is never rejected on sequence grounds. With
// no prior state, only counter 0 may start a sequence. Within a tag the
// counter must advance by exactly one; gaps and repeats are rejected. A
// different tag may only begin at its own counter 0.
func ValidTransition(old, new *SequenceNumber) bool {
	if new == nil {
		return true
	}

	if old == nil {
		return new.Counter == 0
	}

	if old.Tag == new.Tag {
		return new.Counter == old.Counter+1
	}

	return new.Counter == 0
}
