/*
Package randx provides identifier generation for peers and connections.

It derives deterministic Base62 peer tags (used for default nicknames) from a peer's
identity, and generates standard UUID strings used as connection-scoped log correlation ids.
*/
package randx

import (
	"hash/fnv"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// PeerTagLength is the fixed length of a generated peer tag.
	PeerTagLength = 6

	// NicknamePrefix is prepended to the peer tag to form a default nickname.
	NicknamePrefix = "User_"
)

// PeerTag derives a fixed-length Base62 tag from the given peer identity.
// The derivation is deterministic: the same identity always yields the same tag.
// Collisions across identities are tolerated, uniqueness is not required.
func PeerTag(identity string) string {
	h := fnv.New64a()
	h.Write([]byte(identity))
	sum := h.Sum64()

	base := uint64(len(Base62Chars))
	tag := make([]byte, PeerTagLength)

	for i := range tag {
		tag[i] = Base62Chars[sum%base]
		sum /= base
	}

	return string(tag)
}

// DefaultNickname builds the default display name assigned to a newly connected peer.
func DefaultNickname(identity string) string {
	return NicknamePrefix + PeerTag(identity)
}

// ConnectionID generates a UUID v4 string used to correlate log lines of one connection.
func ConnectionID() string {
	return uuid.New().String()
}
