/*
Package transport provides the stream transports that feed the chat engine.

This file contains the WebSocket gateway: each WebSocket connection carries the
same line-oriented protocol (one text frame = one line) and becomes an ordinary
peer through the same Lifecycle as a raw TCP connection.
*/
package transport

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"linechat/internal/app/chat"
	"linechat/internal/pkg/logx"
	"linechat/internal/pkg/randx"
)

// HandleWebSocket creates an HTTP HandlerFunc that upgrades the request and runs
// the per-connection read loop for a WebSocket peer.
func HandleWebSocket(upgrader websocket.Upgrader, lifecycle *chat.Lifecycle, processor *chat.CommandProcessor) http.HandlerFunc {
	baseLogger := logx.Component("WSGateway")

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			baseLogger.Warn().Err(err).Msg("WebSocket upgrade failed.")
			return
		}

		peer := chat.PeerID(conn.RemoteAddr().String())

		logger := baseLogger.With().
			Str("conn_id", randx.ConnectionID()).
			Str("peer", string(peer)).
			Logger()

		handle := newFrameWriter(conn)

		if customErr := lifecycle.OnConnect(peer, handle); customErr != nil {
			logger.Warn().Int("code", customErr.Code).Msg("Rejected WebSocket peer at registration.")
			conn.Close()
			return
		}

		logger.Info().Msg("WebSocket peer connected.")

		for {
			_, data, readErr := conn.ReadMessage()
			if readErr != nil {
				if websocket.IsUnexpectedCloseError(readErr, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Info().Err(readErr).Msg("WebSocket read error.")
				}
				break
			}

			line := strings.TrimRight(string(data), "\r\n")

			if processor.Handle(peer, line) {
				logger.Info().Msg("WebSocket peer requested disconnect.")
				break
			}
		}

		lifecycle.OnDisconnect(peer)
	}
}

// frameWriter is the WebSocket WriteHandle: one text frame per line.
type frameWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newFrameWriter(conn *websocket.Conn) *frameWriter {
	return &frameWriter{conn: conn}
}

// WriteLine sends the text as a single WebSocket text frame, bounded by the write deadline.
func (w *frameWriter) WriteLine(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return w.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

// Close sends a best-effort close frame and closes the underlying connection.
func (w *frameWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	w.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	return w.conn.Close()
}
