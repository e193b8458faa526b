/*
Package chat contains the core session and chatroom state engine.

This file defines the Lifecycle, called by the transport layer when a connection
is accepted and when it terminates (graceful close, read error, or /disconnect).
The disconnect path is owned exclusively by the per-connection loop, which
guarantees it runs at most once per peer.
*/
package chat

import (
	"github.com/rs/zerolog"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/logx"
	"linechat/internal/pkg/randx"
)

// Lifecycle registers and deregisters peers across all registries and announces
// departures to former roommates.
type Lifecycle struct {
	conns     *ConnectionRegistry
	users     *UserRegistry
	rooms     *ChatroomRegistry
	messenger *Messenger

	// structured logger with lifecycle context.
	logger zerolog.Logger
}

// NewLifecycle constructs a Lifecycle on top of the registries and messenger.
func NewLifecycle(conns *ConnectionRegistry, users *UserRegistry, rooms *ChatroomRegistry, messenger *Messenger) *Lifecycle {
	return &Lifecycle{
		conns:     conns,
		users:     users,
		rooms:     rooms,
		messenger: messenger,
		logger:    logx.Component("Lifecycle"),
	}
}

// OnConnect registers a newly accepted peer: its write handle in the connection
// registry and a generated default nickname in the user registry.
func (l *Lifecycle) OnConnect(peer PeerID, handle WriteHandle) *errs.CustomError {
	if customErr := l.conns.Register(peer, handle); customErr != nil {
		return customErr
	}

	nickname := randx.DefaultNickname(string(peer))
	if customErr := l.users.Register(peer, nickname); customErr != nil {
		// Roll the connection back so a failed registration leaves no partial state.
		l.conns.Unregister(peer)
		return customErr
	}

	l.logger.Info().
		Str("peer", string(peer)).
		Str("nickname", nickname).
		Msg("Peer connected.")

	return nil
}

// OnDisconnect tears a peer down: best-effort room departure with an announcement
// to former roommates, then user and connection deregistration, then closing the
// write handle. Safe to call for a peer that never joined a room.
func (l *Lifecycle) OnDisconnect(peer PeerID) {
	nickname, lookupErr := l.users.Lookup(peer)

	roomName, snapshot, leaveErr := l.rooms.Leave(peer)
	if leaveErr == nil && lookupErr == nil {
		l.messenger.AnnounceToRoom(snapshot, formatLine(serverName, nickname+" has left the chatroom."), peer)
	}

	if customErr := l.users.Unregister(peer); customErr != nil {
		l.logger.Debug().Int("code", customErr.Code).Str("peer", string(peer)).Msg("User already unregistered.")
	}

	handle, customErr := l.conns.Unregister(peer)
	if customErr != nil {
		l.logger.Debug().Int("code", customErr.Code).Str("peer", string(peer)).Msg("Connection already unregistered.")
	} else if err := handle.Close(); err != nil {
		l.logger.Debug().Err(err).Str("peer", string(peer)).Msg("Write handle close error during disconnect.")
	}

	l.logger.Info().
		Str("peer", string(peer)).
		Str("room", roomName).
		Msg("Peer disconnected.")
}
