/*
Package chat contains the core session and chatroom state engine.

This file defines the UserRegistry, which maps a peer identity to its display
nickname. Nicknames are non-empty; uniqueness across users is deliberately not
enforced, matching the behavior of the original system.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/logx"
)

// UserRegistry tracks the nickname of every connected peer.
type UserRegistry struct {
	// users maps each peer to its current nickname.
	users map[PeerID]string

	// mu protects concurrent access to the users map.
	mu sync.Mutex

	// structured logger with registry context.
	logger zerolog.Logger
}

// NewUserRegistry constructs an empty UserRegistry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		users:  make(map[PeerID]string),
		logger: logx.Component("UserRegistry"),
	}
}

// Register inserts a peer with its default nickname. The nickname must be non-empty.
func (r *UserRegistry) Register(peer PeerID, defaultNickname string) *errs.CustomError {
	if defaultNickname == "" {
		return errs.NewError(errs.ErrInvalidNickname)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[peer] = defaultNickname
	r.logger.Debug().Str("peer", string(peer)).Str("nickname", defaultNickname).Msg("User registered.")
	return nil
}

// Unregister removes the peer, or fails with ErrUnknownUser if it is absent.
func (r *UserRegistry) Unregister(peer PeerID) *errs.CustomError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[peer]; !ok {
		return errs.NewError(errs.ErrUnknownUser)
	}

	delete(r.users, peer)
	r.logger.Debug().Str("peer", string(peer)).Msg("User unregistered.")
	return nil
}

// Rename changes the peer's nickname. Any non-empty nickname is accepted;
// no uniqueness check is performed. Fails with ErrUnknownUser if the peer is absent.
func (r *UserRegistry) Rename(peer PeerID, newNickname string) *errs.CustomError {
	if newNickname == "" {
		return errs.NewError(errs.ErrInvalidNickname)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[peer]; !ok {
		return errs.NewError(errs.ErrUnknownUser)
	}

	r.users[peer] = newNickname
	r.logger.Debug().Str("peer", string(peer)).Str("nickname", newNickname).Msg("User renamed.")
	return nil
}

// Lookup returns the current nickname of the peer,
// or fails with ErrUnknownUser if the peer is absent.
func (r *UserRegistry) Lookup(peer PeerID) (string, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nickname, ok := r.users[peer]
	if !ok {
		return "", errs.NewError(errs.ErrUnknownUser)
	}
	return nickname, nil
}

// Count returns the number of registered users.
func (r *UserRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}
