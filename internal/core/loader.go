package core

// loader.go turns raw CSV bytes into an immutable Roster.
//
// The input is cleaned before parsing:
//
//   - A UTF-8 BOM (0xEF 0xBB 0xBF) from spreadsheet exports is dropped
//   - Invalid UTF-8 sequences become U+FFFD
//   - Header names are whitespace-trimmed
//
// Cells holding one of the usual spreadsheet NA markers are null, so a
// blank Email cell behaves the same as a missing one everywhere downstream.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/volatiletech/null/v8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// naTokens are the cell values read as null.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// cell converts a raw CSV field to a nullable string.
func cell(s string) null.String {
	if _, na := naTokens[s]; na {
		return null.String{}
	}
	return null.StringFrom(s)
}

// ParseRoster parses CSV data for the given source.
// A zero-byte file, a header missing required columns, and rows wider
// than the header are errors; the roster is never returned partially.
func ParseRoster(data []byte, def SourceDefinition) (*Roster, error) {
	key := def.Info.Key

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrEmptyFile)
	}
	data = bytes.ToValidUTF8(data, []byte("\uFFFD"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	// Hand-typed cells like `John "JJ" Doe` are kept as written.
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, wrapCSVError(key, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range def.RequiredColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Source: key, Columns: missing}
	}

	roster := &Roster{
		Source:  def.Info,
		Columns: header,
		index:   index,
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(key, err)
		}

		line, _ := r.FieldPos(0)
		if len(rec) > len(header) {
			return nil, &LineError{
				Source: key,
				Line:   line,
				Err:    fmt.Errorf("%w: expected %d fields, saw %d", ErrInvalidCSV, len(header), len(rec)),
			}
		}

		values := make([]null.String, len(header))
		for i := range values {
			if i < len(rec) {
				values[i] = cell(rec[i])
			}
		}

		roster.Members = append(roster.Members, deriveMember(def, roster, line, values))
	}

	return roster, nil
}

// wrapCSVError tags encoding/csv failures as ErrInvalidCSV.
func wrapCSVError(key string, err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", key, ErrEmptyFile)
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LineError{Source: key, Line: pe.Line, Err: fmt.Errorf("%w: %v", ErrInvalidCSV, pe.Err)}
	}
	return fmt.Errorf("%s: %w: %v", key, ErrInvalidCSV, err)
}

// deriveMember computes the derived columns for one row.
func deriveMember(def SourceDefinition, roster *Roster, line int, values []null.String) Member {
	m := Member{Line: line, Values: values}

	m.Email = roster.Value(m, def.EmailColumn)
	if def.NameColumn != "" {
		m.Name = roster.Value(m, def.NameColumn)
	}

	m.EducationLevel = NotSpecified
	if def.EducationColumn != "" {
		if v := roster.Value(m, def.EducationColumn); v.Valid {
			m.EducationLevel = v.String
		}
	}

	m.EmailDomain = EmailDomain(m.Email)
	m.AcademicYear = Classify(m.Email)
	return m
}

// EmailDomain returns the text between the first and second '@', or ""
// when the email is null or has no '@'.
func EmailDomain(email null.String) string {
	if !email.Valid {
		return ""
	}
	parts := strings.Split(email.String, "@")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
