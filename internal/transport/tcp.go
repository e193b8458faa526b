/*
Package transport provides the stream transports that feed the chat engine:
a line-oriented TCP listener and a WebSocket gateway speaking the same protocol.

This file contains the TCP server: the accept loop, the per-connection read loop,
and the mutex-guarded line writer handed to the engine as the peer's WriteHandle.
*/
package transport

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"linechat/internal/app/chat"
	"linechat/internal/configs"
	"linechat/internal/pkg/logx"
	"linechat/internal/pkg/randx"
)

const (
	// writeWait bounds a single outbound write so a stalled peer cannot hang
	// a goroutine performing fan-out indefinitely.
	writeWait = 10 * time.Second

	// scannerInitialBuffer is the starting size of the per-connection read buffer.
	scannerInitialBuffer = 4096
)

// TCPServer accepts chat connections and runs one goroutine per connection.
type TCPServer struct {
	addr         string
	maxLineBytes int

	lifecycle *chat.Lifecycle
	processor *chat.CommandProcessor

	listener net.Listener
	wg       sync.WaitGroup

	// structured logger with transport context.
	logger zerolog.Logger
}

// NewTCPServer constructs a TCPServer bound to the configured chat address.
func NewTCPServer(cfg *configs.AppConfig, lifecycle *chat.Lifecycle, processor *chat.CommandProcessor) *TCPServer {
	return &TCPServer{
		addr:         cfg.ChatAddr(),
		maxLineBytes: cfg.MaxLineBytes,
		lifecycle:    lifecycle,
		processor:    processor,
		logger:       logx.Component("TCPServer"),
	}
}

// Listen binds the chat listener. It must be called before Serve.
func (s *TCPServer) Listen() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Addr returns the bound listener address, or nil before Listen succeeded.
func (s *TCPServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until the context is canceled and the listener is
// closed. It returns once accepting stops; call Wait to drain active connections.
func (s *TCPServer) Serve(ctx context.Context) error {
	listener := s.listener

	go func() {
		<-ctx.Done()
		if closeErr := listener.Close(); closeErr != nil {
			s.logger.Debug().Err(closeErr).Msg("Listener close error during shutdown.")
		}
	}()

	s.logger.Info().Str("addr", listener.Addr().String()).Msg("Chat listener started.")

	for {
		conn, acceptErr := listener.Accept()
		if acceptErr != nil {
			if errors.Is(acceptErr, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}

			s.logger.Error().Err(acceptErr).Msg("Error accepting a client.")
			continue
		}

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// ListenAndServe binds the listener and serves until the context is canceled.
func (s *TCPServer) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Wait blocks until every per-connection goroutine has finished.
func (s *TCPServer) Wait() {
	s.wg.Wait()
}

// handleConn owns one connection: it registers the peer, reads one line at a
// time, hands each to the processor, and runs the disconnect path exactly once
// on exit (graceful close, read error, or /disconnect all converge here).
func (s *TCPServer) handleConn(conn net.Conn) {
	defer s.wg.Done()

	peer := chat.PeerID(conn.RemoteAddr().String())

	logger := s.logger.With().
		Str("conn_id", randx.ConnectionID()).
		Str("peer", string(peer)).
		Logger()

	handle := newLineWriter(conn)

	if customErr := s.lifecycle.OnConnect(peer, handle); customErr != nil {
		logger.Warn().Int("code", customErr.Code).Msg("Rejected connection at registration.")
		conn.Close()
		return
	}

	logger.Info().Msg("Connection accepted.")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), s.maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if s.processor.Handle(peer, line) {
			logger.Info().Msg("Peer requested disconnect.")
			break
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		logger.Info().Err(scanErr).Msg("Connection read error.")
	}

	s.lifecycle.OnDisconnect(peer)
}

// lineWriter is the TCP WriteHandle: one delimiter-terminated line per call,
// serialized by a mutex because fan-out may write from several goroutines.
type lineWriter struct {
	mu   sync.Mutex
	conn net.Conn
}

func newLineWriter(conn net.Conn) *lineWriter {
	return &lineWriter{conn: conn}
}

// WriteLine writes the text followed by a newline, bounded by the write deadline.
func (w *lineWriter) WriteLine(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	_, err := w.conn.Write(append([]byte(text), '\n'))
	return err
}

// Close closes the underlying connection.
func (w *lineWriter) Close() error {
	return w.conn.Close()
}
