/*
Package chat contains the core session and chatroom state engine.

This file defines the Messenger, which sends protocol lines to one peer or fans
them out to a room snapshot. Fan-out always iterates a detached snapshot, so no
registry lock is ever held across a blocking network write. Individual delivery
failures are logged and skipped; cleanup of the failed connection is left to the
read side of that connection via the Lifecycle.
*/
package chat

import (
	"fmt"

	"github.com/rs/zerolog"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/logx"
)

// serverName is the sender name used for server-authored announcements.
const serverName = "Server"

// Messenger delivers lines to peers, resolving write handles and sender nicknames.
type Messenger struct {
	conns *ConnectionRegistry
	users *UserRegistry

	// structured logger with messenger context.
	logger zerolog.Logger
}

// NewMessenger constructs a Messenger on top of the connection and user registries.
func NewMessenger(conns *ConnectionRegistry, users *UserRegistry) *Messenger {
	return &Messenger{
		conns:  conns,
		users:  users,
		logger: logx.Component("Messenger"),
	}
}

// SendTo writes one line to a single peer. On a write failure it returns
// ErrDeliveryFailed but does not remove the connection: teardown is triggered by
// the read side of the failed connection, which avoids double-cleanup races.
func (m *Messenger) SendTo(peer PeerID, text string) *errs.CustomError {
	handle, customErr := m.conns.Get(peer)
	if customErr != nil {
		return customErr
	}

	if err := handle.WriteLine(text); err != nil {
		m.logger.Warn().Err(err).Str("peer", string(peer)).Msg("Failed to deliver line to peer.")
		return errs.NewError(errs.ErrDeliveryFailed)
	}

	return nil
}

// AnnounceToRoom sends an already-formatted line to every member of the snapshot
// except the optional excluded peer (empty PeerID means no exclusion).
// It continues past individual delivery failures; partial delivery is acceptable.
func (m *Messenger) AnnounceToRoom(snapshot []PeerID, text string, exclude PeerID) {
	for _, member := range snapshot {
		if member == exclude {
			continue
		}

		if customErr := m.SendTo(member, text); customErr != nil {
			m.logger.Warn().
				Int("code", customErr.Code).
				Str("peer", string(member)).
				Msg("Skipping member during fan-out.")
		}
	}
}

// BroadcastAsUser formats the text as a chat line from the sending peer and
// delivers it to every member of the snapshot except the sender.
// It fails with ErrUnknownUser if the sender has no registered nickname.
func (m *Messenger) BroadcastAsUser(sender PeerID, snapshot []PeerID, text string) *errs.CustomError {
	nickname, customErr := m.users.Lookup(sender)
	if customErr != nil {
		return customErr
	}

	m.AnnounceToRoom(snapshot, formatLine(nickname, text), sender)
	return nil
}

// AnnounceAsServer formats the text as a server announcement and delivers it to
// every member of the snapshot with no exclusion.
func (m *Messenger) AnnounceAsServer(snapshot []PeerID, text string) {
	m.AnnounceToRoom(snapshot, formatLine(serverName, text), "")
}

// formatLine renders the wire form of a chat or announcement line.
func formatLine(sender, text string) string {
	return fmt.Sprintf("[%s]: %s", sender, text)
}
