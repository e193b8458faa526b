/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error interface
and carries a business code, a client-facing message, and an HTTP status code used by the
admin API for unified error reporting.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"linechat/internal/pkg/logx"
)

// CustomError is the custom error structure used throughout the application.
// Message is the exact text sent back to a chat client when a command fails,
// and Status is the HTTP status used when the same error surfaces on the admin API.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the client-facing error description.
	Message string

	// Status is the HTTP status code corresponding to this error on the admin API.
	Status int
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d: %s", e.Code, e.Message)
}

// NewError constructs a *CustomError from a predefined error code. The optional
// details are printf-style arguments applied to the message template when it
// contains formatting placeholders. An unknown code degrades to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Logger().Error().
			Int("requested_code", code).
			Msg("Attempted to create an error with a code missing from errorMap")

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if len(details) > 0 && strings.Contains(customErr.Message, "%") {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	}

	return &customErr
}
