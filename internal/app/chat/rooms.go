/*
Package chat contains the core session and chatroom state engine.

This file defines the ChatroomRegistry, which maps a chatroom name to the ordered
set of member peers. Rooms are created lazily on first join and deleted as soon as
the last member leaves. A peer belongs to at most one room at any instant; joining
a second room is rejected, never an implicit move.

Every method completes its mutation or read under a single lock and returns
detached snapshots, so callers can fan messages out without holding the lock.
*/
package chat

import (
	"slices"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/logx"
)

// ChatroomRegistry tracks chatroom membership.
type ChatroomRegistry struct {
	// rooms maps each room name to its members in insertion order.
	rooms map[string][]PeerID

	// index maps each peer to the name of its current room.
	index map[PeerID]string

	// mu protects concurrent access to both maps.
	mu sync.Mutex

	// structured logger with registry context.
	logger zerolog.Logger
}

// NewChatroomRegistry constructs an empty ChatroomRegistry.
func NewChatroomRegistry() *ChatroomRegistry {
	return &ChatroomRegistry{
		rooms:  make(map[string][]PeerID),
		index:  make(map[PeerID]string),
		logger: logx.Component("ChatroomRegistry"),
	}
}

// Join adds the peer to the named room, creating the room if it does not exist.
// It fails with ErrAlreadyMember if the peer is already in that room, and with
// ErrAlreadyInAnotherRoom if the peer is a member of a different room.
// On success it returns a snapshot of the room's members including the new one,
// for announcement fan-out.
func (r *ChatroomRegistry) Join(roomName string, peer PeerID) ([]PeerID, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.index[peer]; ok {
		if current == roomName {
			return nil, errs.NewError(errs.ErrAlreadyMember, roomName)
		}
		return nil, errs.NewError(errs.ErrAlreadyInAnotherRoom, current)
	}

	r.rooms[roomName] = append(r.rooms[roomName], peer)
	r.index[peer] = roomName

	r.logger.Info().
		Str("room", roomName).
		Str("peer", string(peer)).
		Int("members", len(r.rooms[roomName])).
		Msg("Peer joined room.")

	return slices.Clone(r.rooms[roomName]), nil
}

// Leave removes the peer from its current room, deleting the room if it becomes
// empty. It fails with ErrNotInAnyRoom if the peer has no room. On success it
// returns the room name and the pre-removal member snapshot, so callers can
// announce the departure to former roommates.
func (r *ChatroomRegistry) Leave(peer PeerID) (string, []PeerID, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomName, ok := r.index[peer]
	if !ok {
		return "", nil, errs.NewError(errs.ErrNotInAnyRoom)
	}

	before := slices.Clone(r.rooms[roomName])

	remaining := lo.Without(r.rooms[roomName], peer)
	delete(r.index, peer)

	if len(remaining) == 0 {
		delete(r.rooms, roomName)
		r.logger.Info().Str("room", roomName).Msg("Room emptied and removed.")
	} else {
		r.rooms[roomName] = remaining
	}

	r.logger.Info().
		Str("room", roomName).
		Str("peer", string(peer)).
		Int("members", len(remaining)).
		Msg("Peer left room.")

	return roomName, before, nil
}

// MembersOf returns a member snapshot of the named room,
// or fails with ErrUnknownRoom if the room does not exist.
func (r *ChatroomRegistry) MembersOf(roomName string) ([]PeerID, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomName]
	if !ok {
		return nil, errs.NewError(errs.ErrUnknownRoom, roomName)
	}
	return slices.Clone(members), nil
}

// RoomOf returns the name and member snapshot of the peer's current room,
// or fails with ErrNotInAnyRoom if the peer has no room.
func (r *ChatroomRegistry) RoomOf(peer PeerID) (string, []PeerID, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomName, ok := r.index[peer]
	if !ok {
		return "", nil, errs.NewError(errs.ErrNotInAnyRoom)
	}
	return roomName, slices.Clone(r.rooms[roomName]), nil
}

// ListRoomNames returns all room names in lexicographic order.
func (r *ChatroomRegistry) ListRoomNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := lo.Keys(r.rooms)
	sort.Strings(names)
	return names
}

// MemberCounts returns a snapshot of the member count per room.
func (r *ChatroomRegistry) MemberCounts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.MapValues(r.rooms, func(members []PeerID, _ string) int {
		return len(members)
	})
}

// Count returns the number of active rooms.
func (r *ChatroomRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rooms)
}
