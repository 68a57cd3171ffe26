package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "missing file maps correctly",
			err:         fmt.Errorf("load members: %w: /data/members.csv", ErrSourceNotFound),
			wantCode:    "FILE001",
			wantMessage: "A roster data file could not be found",
		},
		{
			name:        "bad quoting maps correctly",
			err:         &LineError{Source: "manual", Line: 4, Err: fmt.Errorf("%w: bare quote", ErrInvalidCSV)},
			wantCode:    "FILE002",
			wantMessage: "A roster data file is not a valid CSV",
		},
		{
			name:        "empty file maps correctly",
			err:         fmt.Errorf("manual: %w", ErrEmptyFile),
			wantCode:    "FILE003",
			wantMessage: "A roster data file is empty",
		},
		{
			name:        "permission denied maps correctly",
			err:         errors.New("open /data/manual.csv: permission denied"),
			wantCode:    "FILE004",
			wantMessage: "A roster data file could not be read",
		},
		{
			name:        "bad filter maps correctly",
			err:         fmt.Errorf("%w: year must be an academic year", ErrInvalidQuery),
			wantCode:    "VAL001",
			wantMessage: "The selected filters are not valid",
		},
		{
			name:        "missing column maps correctly",
			err:         &MissingColumnsError{Source: "manual", Columns: []string{"Email"}},
			wantCode:    "VAL002",
			wantMessage: "A roster data file is missing a required column",
		},
		{
			name:        "unknown source maps correctly",
			err:         fmt.Errorf("%w: alumni", ErrUnknownSource),
			wantCode:    "SRC001",
			wantMessage: "That email list does not exist",
		},
		{
			name:        "cancelled context maps correctly",
			err:         context.Canceled,
			wantCode:    "REQ001",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline maps correctly",
			err:         fmt.Errorf("load manual: %w", context.DeadlineExceeded),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "matching ignores case",
			err:         errors.New("SOURCE FILE NOT FOUND"),
			wantCode:    "FILE001",
			wantMessage: "A roster data file could not be found",
		},
		{
			name:        "unknown error gets default",
			err:         errors.New("something unexpected"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "missing file",
			err:  ErrSourceNotFound,
			want: "A roster data file could not be found (Code: FILE001). Check DATA_DIR and the configured file names, then reload",
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: "An unexpected error occurred (Code: ERR000). Please try again or contact the GDG tech team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUserError(tt.err); got != tt.want {
				t.Errorf("FormatUserError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"known pattern", ErrEmptyFile, true},
		{"unknown error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if NewUserError(nil) != nil {
		t.Fatal("NewUserError(nil) should return nil")
	}

	technical := fmt.Errorf("load manual: %w", ErrEmptyFile)
	ue := NewUserError(technical)

	if ue.User.Code != "FILE003" {
		t.Errorf("Code = %q, want FILE003", ue.User.Code)
	}
	if ue.Error() != ue.User.Message {
		t.Errorf("Error() = %q, want %q", ue.Error(), ue.User.Message)
	}
	if !errors.Is(ue, ErrEmptyFile) {
		t.Error("UserError should unwrap to the technical error")
	}
}

func TestErrorPatternsHaveCodes(t *testing.T) {
	seen := make(map[string]bool)
	for _, ep := range errorPatterns {
		if ep.msg.Code == "" || ep.msg.Message == "" || ep.msg.Action == "" {
			t.Errorf("pattern %q has an incomplete message", ep.pattern)
		}
		if seen[ep.pattern] {
			t.Errorf("duplicate pattern %q", ep.pattern)
		}
		seen[ep.pattern] = true
	}
}
