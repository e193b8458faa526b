/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific protocol, state, and delivery failures both
internally within the server and in the error lines reported back to chat clients.
*/
package errs

// 1xxx: Protocol Errors (malformed commands; the connection stays open)
const (
	// ErrWrongArgCount indicates a command was given the wrong number of arguments.
	ErrWrongArgCount = 1001

	// ErrUnknownCommand indicates the client sent a command name that is not recognized.
	ErrUnknownCommand = 1002

	// ErrInvalidNickname indicates a rename to an empty nickname was attempted.
	ErrInvalidNickname = 1003
)

// 2xxx: Registry State Errors (the failed operation leaves registries unmodified)
const (
	// ErrAlreadyMember indicates a join for a room the peer already belongs to.
	ErrAlreadyMember = 2101

	// ErrAlreadyInAnotherRoom indicates a join while the peer is a member of a different room.
	ErrAlreadyInAnotherRoom = 2102

	// ErrNotInAnyRoom indicates a room-scoped operation from a peer with no current room.
	ErrNotInAnyRoom = 2103

	// ErrUnknownRoom indicates a lookup for a room name with no members.
	ErrUnknownRoom = 2104

	// ErrUnknownUser indicates a lookup or rename for a peer absent from the user registry.
	ErrUnknownUser = 2201

	// ErrDuplicateConnection indicates a connection registration for an already-registered peer.
	ErrDuplicateConnection = 2301

	// ErrUnknownConnection indicates a lookup for a peer absent from the connection registry.
	ErrUnknownConnection = 2302
)

// 3xxx: Delivery Errors
const (
	// ErrDeliveryFailed indicates a write to a peer failed during fan-out.
	// It never aborts the remaining fan-out and never fails the triggering command.
	ErrDeliveryFailed = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)
