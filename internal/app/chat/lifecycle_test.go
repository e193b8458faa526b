package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/randx"
)

func TestLifecycle_OnConnect_RegistersEverywhere(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handle := &fakeHandle{}

	req.Nil(core.lifecycle.OnConnect("peer-a", handle))

	got, connErr := core.conns.Get("peer-a")
	req.Nil(connErr)
	req.Same(handle, got.(*fakeHandle))

	nickname, userErr := core.users.Lookup("peer-a")
	req.Nil(userErr)
	req.Equal(randx.DefaultNickname("peer-a"), nickname)
	req.True(strings.HasPrefix(nickname, randx.NicknamePrefix))
}

func TestLifecycle_OnConnect_DuplicatePeer(t *testing.T) {
	req := require.New(t)
	core := newTestCore()

	req.Nil(core.lifecycle.OnConnect("peer-a", &fakeHandle{}))

	customErr := core.lifecycle.OnConnect("peer-a", &fakeHandle{})
	req.NotNil(customErr)
	req.Equal(errs.ErrDuplicateConnection, customErr.Code)
}

func TestLifecycle_OnDisconnect_MidMembership(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")
	handleB := core.connect("peer-b")

	core.processor.Handle("peer-a", "/join lobby")
	core.processor.Handle("peer-b", "/join lobby")
	core.processor.Handle("peer-a", "/nick alice")

	core.lifecycle.OnDisconnect("peer-a")

	// Former roommates hear the departure; the departed peer does not.
	req.Equal("[Server]: alice has left the chatroom.", handleB.LastLine())
	req.NotContains(handleA.Lines(), "[Server]: alice has left the chatroom.")

	// All registries forget the peer and its handle is closed.
	_, userErr := core.users.Lookup("peer-a")
	req.NotNil(userErr)
	_, connErr := core.conns.Get("peer-a")
	req.NotNil(connErr)
	req.True(handleA.Closed())

	// The room survives because B remains a member.
	members, membersErr := core.rooms.MembersOf("lobby")
	req.Nil(membersErr)
	req.Equal([]PeerID{"peer-b"}, members)
}

func TestLifecycle_OnDisconnect_LastMemberDeletesRoom(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	core.connect("peer-a")

	core.processor.Handle("peer-a", "/join lobby")
	core.lifecycle.OnDisconnect("peer-a")

	req.Empty(core.rooms.ListRoomNames())
	req.Equal(0, core.users.Count())
	req.Equal(0, core.conns.Count())
}

func TestLifecycle_OnDisconnect_WithoutRoomIsSafe(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	core.lifecycle.OnDisconnect("peer-a")

	req.True(handleA.Closed())
	req.Equal(0, core.conns.Count())
}
