/*
Package handler provides the HTTP handlers and routing setup for the admin API.

This file contains the read-only room and session inspection handlers. The chat
protocol itself runs over the stream transports; these endpoints only observe.
*/
package handler

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"linechat/internal/app/chat"
	"linechat/internal/pkg/resp"
)

// RoomSummary describes one active chatroom in the rooms listing.
type RoomSummary struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// StatsPayload reports process-wide registry counts.
type StatsPayload struct {
	Connections int `json:"connections"`
	Users       int `json:"users"`
	Rooms       int `json:"rooms"`
}

// HandleListRooms returns every active room with its member count.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := deps.Rooms.MemberCounts()

		summaries := lo.MapToSlice(counts, func(name string, members int) RoomSummary {
			return RoomSummary{Name: name, Members: members}
		})
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].Name < summaries[j].Name
		})

		resp.RespondSuccess(w, summaries)
	}
}

// HandleRoomUsers returns the nicknames of the members of one room.
func HandleRoomUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomName := chi.URLParam(r, "name")

		members, customErr := deps.Rooms.MembersOf(roomName)
		if customErr != nil {
			resp.RespondError(w, customErr)
			return
		}

		nicknames := lo.FilterMap(members, func(member chat.PeerID, _ int) (string, bool) {
			nickname, lookupErr := deps.Users.Lookup(member)
			return nickname, lookupErr == nil
		})

		resp.RespondSuccess(w, nicknames)
	}
}

// HandleStats returns connection, user, and room counts.
func HandleStats(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, StatsPayload{
			Connections: deps.Conns.Count(),
			Users:       deps.Users.Count(),
			Rooms:       deps.Rooms.Count(),
		})
	}
}
