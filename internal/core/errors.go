package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSource  = errors.New("unknown source")
	ErrSourceNotFound = errors.New("source file not found")
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidCSV     = errors.New("invalid csv")
	ErrEmptyFile      = errors.New("empty file")
	ErrInvalidQuery   = errors.New("invalid query")
)

// MissingColumnsError reports every required column absent from a source.
type MissingColumnsError struct {
	Source  string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required column(s) %s", e.Source, strings.Join(e.Columns, ", "))
}

// Is makes errors.Is(err, ErrMissingColumn) hold.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumn
}

// LineError ties a parse failure to a CSV line.
type LineError struct {
	Source string
	Line   int
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
