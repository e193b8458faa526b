package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"linechat/internal/pkg/randx"
)

func TestProcessor_JoinAnnouncesToRoom(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	disconnect := core.processor.Handle("peer-a", "/join lobby")
	req.False(disconnect)

	nickA := randx.DefaultNickname("peer-a")
	req.Equal([]string{"[Server]: " + nickA + " has joined the chatroom."}, handleA.Lines())
}

func TestProcessor_BroadcastRequiresRoom(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	core.processor.Handle("peer-a", "hello")

	req.Len(handleA.Lines(), 1)
	req.Contains(handleA.LastLine(), "not in a chatroom")
}

func TestProcessor_UnknownCommand(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	core.processor.Handle("peer-a", "/frobnicate")

	req.Len(handleA.Lines(), 1)
	req.Contains(handleA.LastLine(), `Unknown command "/frobnicate"`)
}

func TestProcessor_WrongArgCounts(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	cases := []string{
		"/join",
		"/join lobby extra",
		"/leave now",
		"/list all",
		"/users verbose",
		"/nick",
		"/nick two words",
		"/help me",
		"/disconnect now",
	}

	for _, line := range cases {
		core.processor.Handle("peer-a", line)
	}

	lines := handleA.Lines()
	req.Len(lines, len(cases))
	for _, reply := range lines {
		req.Contains(reply, "Usage:")
	}
}

func TestProcessor_EmptyLineIgnored(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	req.False(core.processor.Handle("peer-a", ""))
	req.False(core.processor.Handle("peer-a", "\r\n"))
	req.Empty(handleA.Lines())
}

func TestProcessor_Help(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	core.processor.Handle("peer-a", "/help")

	req.Len(handleA.Lines(), 1)
	req.Contains(handleA.LastLine(), "/join <room>")
	req.Contains(handleA.LastLine(), "/disconnect")
}

func TestProcessor_ListAndUsers(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")
	core.connect("peer-b")

	core.processor.Handle("peer-a", "/list")
	req.Equal("No active chatrooms.", handleA.LastLine())

	core.processor.Handle("peer-a", "/join lobby")
	core.processor.Handle("peer-b", "/join zoo")
	core.processor.Handle("peer-a", "/list")
	req.Equal("lobby, zoo", handleA.LastLine())

	core.processor.Handle("peer-a", "/nick alice")
	core.processor.Handle("peer-a", "/users")

	lines := strings.Split(handleA.LastLine(), "\n")
	req.Equal([]string{
		"lobby: alice",
		"zoo: " + randx.DefaultNickname("peer-b"),
	}, lines)
}

func TestProcessor_DisconnectSignalsOwningLoop(t *testing.T) {
	req := require.New(t)
	core := newTestCore()
	handleA := core.connect("peer-a")

	req.True(core.processor.Handle("peer-a", "/disconnect"))
	req.Empty(handleA.Lines())
}

// Full session walk-through mirroring two clients sharing a lobby.
func TestProcessor_TwoClientScenario(t *testing.T) {
	req := require.New(t)
	core := newTestCore()

	// Client A connects and joins lobby; only A receives the announcement.
	handleA := core.connect("peer-a")
	nickA := randx.DefaultNickname("peer-a")

	core.processor.Handle("peer-a", "/join lobby")
	req.Equal([]string{"[Server]: " + nickA + " has joined the chatroom."}, handleA.Lines())

	// A renames itself; success produces no reply.
	core.processor.Handle("peer-a", "/nick alice")
	req.Len(handleA.Lines(), 1)

	// Client B connects and joins; both receive B's announcement.
	handleB := core.connect("peer-b")
	nickB := randx.DefaultNickname("peer-b")

	core.processor.Handle("peer-b", "/join lobby")
	joinLine := "[Server]: " + nickB + " has joined the chatroom."
	req.Equal(joinLine, handleA.LastLine())
	req.Equal(joinLine, handleB.LastLine())

	// A broadcasts; only B receives it, formatted with A's new nickname.
	core.processor.Handle("peer-a", "hello")
	req.Equal("[alice]: hello", handleB.LastLine())
	req.Len(handleA.Lines(), 2)

	// A leaves; the old room hears the departure and the room survives with B.
	core.processor.Handle("peer-a", "/leave")
	req.Equal("[Server]: alice has left the chatroom.", handleB.LastLine())

	core.processor.Handle("peer-b", "/list")
	req.Equal("lobby", handleB.LastLine())

	// Nick changes do not retroactively alter already-delivered lines.
	core.processor.Handle("peer-b", "/nick bob")
	req.Contains(handleB.Lines(), "[alice]: hello")
}
