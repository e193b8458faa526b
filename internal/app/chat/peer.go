/*
Package chat contains the core session and chatroom state engine: the registries
tracking connections, user identities, and chatroom membership, the messenger that
fans lines out to peers, the command processor, and the connection lifecycle.

This file defines the PeerID key type shared by every registry and the WriteHandle
interface through which the engine reaches a peer's outbound stream.
*/
package chat

// PeerID uniquely identifies one connected client. It is derived from the
// transport-level remote address, is stable for the lifetime of the connection,
// and is never reused while that connection is open.
type PeerID string

// WriteHandle is the outbound half of a peer's connection as seen by the engine.
// Implementations must be safe for concurrent use: fan-out may write to the same
// peer from several connection goroutines at once.
type WriteHandle interface {
	// WriteLine writes one protocol line to the peer, appending the line delimiter.
	WriteLine(text string) error

	// Close closes the underlying transport connection.
	Close() error
}
