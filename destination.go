package signeddata

import (
	"strings"

	"github.com/opd-ai/signeddata/envelope"
)

// DestinedForMe reports whether a message with the given destination is
// addressed to the node named identity. A nil destination is broadcast and
// accepted by anyone. When the destination is set but identity is empty,
// the check fails closed: a node that has not declared who it is accepts
// no directed messages.
func DestinedForMe(destination *string, identity string) bool {
	if destination == nil {
		return true
	}

	if identity == "" {
		return false
	}

	for _, recipient := range strings.Split(*destination, envelope.SequenceSep) {
		if recipient == identity {
			return true
		}
	}
	return false
}
