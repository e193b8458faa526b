/*
Package chat contains the core session and chatroom state engine.

This file defines the CommandProcessor, which parses one inbound line from a peer
and dispatches it: lines starting with "/" are session commands, everything else is
a broadcast to the sender's current room. Every failure is reported back to the
sender as a single error line and is never fatal to the connection. Handlers touch
registries one at a time in a fixed order (rooms, then users, then connections),
so no two registry locks are ever nested.
*/
package chat

import (
	"strings"

	"github.com/rs/zerolog"

	"linechat/internal/pkg/errs"
	"linechat/internal/pkg/logx"
)

// helpText is the static command list returned by /help.
const helpText = `Available commands:
/join <room>   join a chatroom, creating it if needed
/leave         leave your current chatroom
/list          list active chatrooms
/users         list the users in every chatroom
/nick <name>   change your nickname
/help          show this help
/disconnect    leave your chatroom and close the connection`

// CommandProcessor parses inbound protocol lines and drives registry mutations
// and messenger fan-out.
type CommandProcessor struct {
	rooms     *ChatroomRegistry
	users     *UserRegistry
	messenger *Messenger

	// structured logger with processor context.
	logger zerolog.Logger
}

// NewCommandProcessor constructs a CommandProcessor on top of the registries and messenger.
func NewCommandProcessor(rooms *ChatroomRegistry, users *UserRegistry, messenger *Messenger) *CommandProcessor {
	return &CommandProcessor{
		rooms:     rooms,
		users:     users,
		messenger: messenger,
		logger:    logx.Component("CommandProcessor"),
	}
}

// Handle processes one inbound line from the peer. It returns true when the peer
// requested to disconnect, in which case the owning connection loop must stop
// reading and run the disconnect path of the Lifecycle exactly once.
func (p *CommandProcessor) Handle(peer PeerID, line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return false
	}

	if !strings.HasPrefix(line, "/") {
		p.reply(peer, p.handleBroadcast(peer, line))
		return false
	}

	parts := strings.Fields(line[1:])
	if len(parts) == 0 {
		p.reply(peer, errs.NewError(errs.ErrUnknownCommand, line))
		return false
	}

	name, args := parts[0], parts[1:]

	var customErr *errs.CustomError
	disconnect := false

	switch name {
	case "join":
		customErr = p.handleJoin(peer, args)
	case "leave":
		customErr = p.handleLeave(peer, args)
	case "list":
		customErr = p.handleList(peer, args)
	case "users":
		customErr = p.handleUsers(peer, args)
	case "nick":
		customErr = p.handleNick(peer, args)
	case "help":
		customErr = p.handleHelp(peer, args)
	case "disconnect":
		customErr = p.handleDisconnect(peer, args)
		disconnect = customErr == nil
	default:
		customErr = errs.NewError(errs.ErrUnknownCommand, "/"+name)
	}

	p.reply(peer, customErr)
	return disconnect
}

// reply converts a handler failure into a single error line sent back to the sender.
func (p *CommandProcessor) reply(peer PeerID, customErr *errs.CustomError) {
	if customErr == nil {
		return
	}

	p.logger.Debug().
		Int("code", customErr.Code).
		Str("peer", string(peer)).
		Msg("Command failed, reporting to sender.")

	if sendErr := p.messenger.SendTo(peer, customErr.Message); sendErr != nil {
		p.logger.Warn().
			Int("code", sendErr.Code).
			Str("peer", string(peer)).
			Msg("Failed to deliver error reply.")
	}
}

// handleBroadcast delivers a plain line to the sender's current room.
func (p *CommandProcessor) handleBroadcast(peer PeerID, text string) *errs.CustomError {
	_, snapshot, customErr := p.rooms.RoomOf(peer)
	if customErr != nil {
		return customErr
	}

	return p.messenger.BroadcastAsUser(peer, snapshot, text)
}

func (p *CommandProcessor) handleJoin(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 1 {
		return errs.NewError(errs.ErrWrongArgCount, "/join <room>")
	}

	snapshot, customErr := p.rooms.Join(args[0], peer)
	if customErr != nil {
		return customErr
	}

	nickname, customErr := p.users.Lookup(peer)
	if customErr != nil {
		return customErr
	}

	p.messenger.AnnounceAsServer(snapshot, nickname+" has joined the chatroom.")
	return nil
}

func (p *CommandProcessor) handleLeave(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 0 {
		return errs.NewError(errs.ErrWrongArgCount, "/leave")
	}

	_, snapshot, customErr := p.rooms.Leave(peer)
	if customErr != nil {
		return customErr
	}

	nickname, customErr := p.users.Lookup(peer)
	if customErr != nil {
		return customErr
	}

	p.messenger.AnnounceAsServer(snapshot, nickname+" has left the chatroom.")
	return nil
}

func (p *CommandProcessor) handleList(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 0 {
		return errs.NewError(errs.ErrWrongArgCount, "/list")
	}

	names := p.rooms.ListRoomNames()
	if len(names) == 0 {
		return p.messenger.SendTo(peer, "No active chatrooms.")
	}

	return p.messenger.SendTo(peer, strings.Join(names, ", "))
}

func (p *CommandProcessor) handleUsers(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 0 {
		return errs.NewError(errs.ErrWrongArgCount, "/users")
	}

	var lines []string

	for _, roomName := range p.rooms.ListRoomNames() {
		members, customErr := p.rooms.MembersOf(roomName)
		if customErr != nil {
			// The room emptied between the listing and the lookup. Skip it.
			continue
		}

		nicknames := make([]string, 0, len(members))
		for _, member := range members {
			nickname, lookupErr := p.users.Lookup(member)
			if lookupErr != nil {
				continue
			}
			nicknames = append(nicknames, nickname)
		}

		lines = append(lines, roomName+": "+strings.Join(nicknames, ", "))
	}

	if len(lines) == 0 {
		return p.messenger.SendTo(peer, "No users in any chatroom.")
	}

	return p.messenger.SendTo(peer, strings.Join(lines, "\n"))
}

func (p *CommandProcessor) handleNick(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 1 {
		return errs.NewError(errs.ErrWrongArgCount, "/nick <name>")
	}

	return p.users.Rename(peer, args[0])
}

func (p *CommandProcessor) handleHelp(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 0 {
		return errs.NewError(errs.ErrWrongArgCount, "/help")
	}

	return p.messenger.SendTo(peer, helpText)
}

func (p *CommandProcessor) handleDisconnect(peer PeerID, args []string) *errs.CustomError {
	if len(args) != 0 {
		return errs.NewError(errs.ErrWrongArgCount, "/disconnect")
	}

	// Room departure, deregistration, and closing the transport all happen on
	// the Lifecycle disconnect path owned by the connection loop.
	return nil
}
