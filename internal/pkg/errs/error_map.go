/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct. The Message text
is what a chat client sees as the error reply line; Status standardizes admin API responses.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: Protocol Errors
	ErrWrongArgCount:   {Code: ErrWrongArgCount, Message: "Invalid arguments. Usage: %s"},
	ErrUnknownCommand:  {Code: ErrUnknownCommand, Message: "Unknown command %q. Type /help for the list of commands."},
	ErrInvalidNickname: {Code: ErrInvalidNickname, Message: "Nickname must not be empty."},

	// 2xxx: Registry State Errors
	ErrAlreadyMember:        {Code: ErrAlreadyMember, Message: "You are already a member of %s."},
	ErrAlreadyInAnotherRoom: {Code: ErrAlreadyInAnotherRoom, Message: "Leave %s before joining another chatroom."},
	ErrNotInAnyRoom:         {Code: ErrNotInAnyRoom, Message: "You are not in a chatroom. Use /join <room> first."},
	ErrUnknownRoom:          {Code: ErrUnknownRoom, Message: "Chatroom %q not found.", Status: http.StatusNotFound},
	ErrUnknownUser:          {Code: ErrUnknownUser, Message: "Unknown user.", Status: http.StatusNotFound},
	ErrDuplicateConnection:  {Code: ErrDuplicateConnection, Message: "Connection already registered.", Status: http.StatusConflict},
	ErrUnknownConnection:    {Code: ErrUnknownConnection, Message: "Unknown connection.", Status: http.StatusNotFound},

	// 3xxx: Delivery Errors
	ErrDeliveryFailed: {Code: ErrDeliveryFailed, Message: "Message could not be delivered."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
