package chat

import (
	"errors"
	"sync"
)

// fakeHandle is an in-memory WriteHandle recording every delivered line.
type fakeHandle struct {
	mu      sync.Mutex
	lines   []string
	failing bool
	closed  bool
}

func (f *fakeHandle) WriteLine(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("broken pipe")
	}
	f.lines = append(f.lines, text)
	return nil
}

func (f *fakeHandle) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

func (f *fakeHandle) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

func (f *fakeHandle) LastLine() string {
	lines := f.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func (f *fakeHandle) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// testCore bundles a fully wired engine for tests.
type testCore struct {
	conns     *ConnectionRegistry
	users     *UserRegistry
	rooms     *ChatroomRegistry
	messenger *Messenger
	processor *CommandProcessor
	lifecycle *Lifecycle
}

func newTestCore() *testCore {
	conns := NewConnectionRegistry()
	users := NewUserRegistry()
	rooms := NewChatroomRegistry()
	messenger := NewMessenger(conns, users)

	return &testCore{
		conns:     conns,
		users:     users,
		rooms:     rooms,
		messenger: messenger,
		processor: NewCommandProcessor(rooms, users, messenger),
		lifecycle: NewLifecycle(conns, users, rooms, messenger),
	}
}

// connect registers a peer through the lifecycle and returns its capture handle.
func (c *testCore) connect(peer PeerID) *fakeHandle {
	handle := &fakeHandle{}
	if customErr := c.lifecycle.OnConnect(peer, handle); customErr != nil {
		panic(customErr)
	}
	return handle
}
