/*
Package handler provides the HTTP handlers and routing setup for the admin API.

This file defines the Router, applying logging, CORS, and recovery middleware
before delegating to the inspection handlers and the WebSocket gateway.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"linechat/internal/pkg/logx"
	"linechat/internal/pkg/resp"
	"linechat/internal/transport"
)

// Router sets up the admin HTTP routing table. It configures CORS from the
// allowed origins, applies global middleware, and mounts the read-only API
// and the WebSocket gateway.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Logger().Warn().Str("origin", origin).Msg("WebSocket connection rejected: Origin not allowed.")
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, map[string]string{
			"status":  "ok",
			"service": "linechat",
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/rooms", HandleListRooms(deps))
		api.Get("/rooms/{name}/users", HandleRoomUsers(deps))
		api.Get("/stats", HandleStats(deps))
	})

	r.Get("/ws", transport.HandleWebSocket(wsUpgrader, deps.Lifecycle, deps.Processor))

	return r
}
