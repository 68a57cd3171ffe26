package core

// # Error Codes Reference
//
// Users quote these codes when reporting a problem. Codes are grouped by
// category:
//
//	FILE001 - Data file not found          Patterns: "source file not found"
//	FILE002 - Data file is not valid CSV   Patterns: "invalid csv"
//	FILE003 - Data file is empty           Patterns: "empty file"
//	FILE004 - Data file unreadable         Patterns: "permission denied"
//	VAL001  - Invalid filter or sort       Patterns: "invalid query"
//	VAL002  - Required column missing      Patterns: "missing required column"
//	SRC001  - Unknown roster source        Patterns: "unknown source"
//	REQ001  - Request cancelled            Patterns: "context canceled"
//	REQ002  - Request timed out            Patterns: "context deadline exceeded", "timeout"
//	RATE001 - Too many requests            Patterns: "rate limit"
//	ERR000  - Anything else; check the logs for the technical error
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "source file not found",
		msg: UserMessage{
			Message: "A roster data file could not be found",
			Action:  "Check DATA_DIR and the configured file names, then reload",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "A roster data file is not a valid CSV",
			Action:  "Re-export the sheet as comma-separated values",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "A roster data file is empty",
			Action:  "Re-export the sheet including its header row",
			Code:    "FILE003",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "A roster data file could not be read",
			Action:  "Check the file permissions on the server",
			Code:    "FILE004",
		},
	},

	// Validation errors
	{
		pattern: "invalid query",
		msg: UserMessage{
			Message: "The selected filters are not valid",
			Action:  "Reset the filters and try again",
			Code:    "VAL001",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A roster data file is missing a required column",
			Action:  "Check that the export still has its Email, Name and Under_Graduate headers",
			Code:    "VAL002",
		},
	},

	// Source errors
	{
		pattern: "unknown source",
		msg: UserMessage{
			Message: "That email list does not exist",
			Action:  "Pick one of the lists on the Email Management page",
			Code:    "SRC001",
		},
	},

	// Request errors
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again in a few moments",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again in a few moments",
			Code:    "REQ002",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact the GDG tech team",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 when none matches.
//
//	msg := MapError(fmt.Errorf("load members: %w", ErrSourceNotFound))
//	// msg.Code == "FILE001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action" for display.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
