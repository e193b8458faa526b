package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeerTag_Deterministic(t *testing.T) {
	req := require.New(t)

	tag := PeerTag("127.0.0.1:51234")

	req.Len(tag, PeerTagLength)
	req.Equal(tag, PeerTag("127.0.0.1:51234"))

	for _, char := range tag {
		req.True(strings.ContainsRune(Base62Chars, char))
	}
}

func TestPeerTag_DiffersAcrossIdentities(t *testing.T) {
	// Not a uniqueness guarantee, but two plain loopback addresses should not collide.
	require.NotEqual(t, PeerTag("127.0.0.1:51234"), PeerTag("127.0.0.1:51235"))
}

func TestDefaultNickname(t *testing.T) {
	req := require.New(t)

	nick := DefaultNickname("127.0.0.1:51234")

	req.True(strings.HasPrefix(nick, NicknamePrefix))
	req.Equal(nick, DefaultNickname("127.0.0.1:51234"))
	req.NotEmpty(strings.TrimPrefix(nick, NicknamePrefix))
}

func TestConnectionID_Unique(t *testing.T) {
	require.NotEqual(t, ConnectionID(), ConnectionID())
}
