/*
Package chat contains the core session and chatroom state engine.

This file defines the ConnectionRegistry, which maps a peer identity to its
outbound write handle. All operations are pure map mutations under a single lock;
no network I/O ever happens while the lock is held.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/logx"
)

// ConnectionRegistry tracks the write handle of every connected peer.
type ConnectionRegistry struct {
	// conns maps each peer to its outbound write handle.
	conns map[PeerID]WriteHandle

	// mu protects concurrent access to the conns map.
	mu sync.Mutex

	// structured logger with registry context.
	logger zerolog.Logger
}

// NewConnectionRegistry constructs an empty ConnectionRegistry.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns:  make(map[PeerID]WriteHandle),
		logger: logx.Component("ConnectionRegistry"),
	}
}

// Register inserts the write handle for a newly connected peer.
// It fails with ErrDuplicateConnection if the peer is already registered.
func (r *ConnectionRegistry) Register(peer PeerID, handle WriteHandle) *errs.CustomError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[peer]; ok {
		r.logger.Warn().Str("peer", string(peer)).Msg("Attempted to register duplicate connection.")
		return errs.NewError(errs.ErrDuplicateConnection)
	}

	r.conns[peer] = handle
	r.logger.Debug().Str("peer", string(peer)).Int("total_conns", len(r.conns)).Msg("Connection registered.")
	return nil
}

// Unregister removes the peer and returns its write handle so the caller can
// close it. It fails with ErrUnknownConnection if the peer is absent.
func (r *ConnectionRegistry) Unregister(peer PeerID) (WriteHandle, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle, ok := r.conns[peer]
	if !ok {
		return nil, errs.NewError(errs.ErrUnknownConnection)
	}

	delete(r.conns, peer)
	r.logger.Debug().Str("peer", string(peer)).Int("total_conns", len(r.conns)).Msg("Connection unregistered.")
	return handle, nil
}

// Get returns the current write handle of the peer,
// or fails with ErrUnknownConnection if the peer is absent.
func (r *ConnectionRegistry) Get(peer PeerID) (WriteHandle, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle, ok := r.conns[peer]
	if !ok {
		return nil, errs.NewError(errs.ErrUnknownConnection)
	}
	return handle, nil
}

// Handles returns a snapshot of every registered write handle.
// Used at shutdown to force-close all connections without holding the lock.
func (r *ConnectionRegistry) Handles() []WriteHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.Values(r.conns)
}

// Count returns the number of registered connections.
func (r *ConnectionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}
