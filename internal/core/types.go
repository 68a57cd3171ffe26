package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NotSpecified is the education level given to rows with no education value.
const NotSpecified = "Not Specified"

// Education labels the dashboard gives their own metrics.
const (
	EducationUndergraduate = "Under_Graduate"
	EducationGraduate      = "Graduate"
)

// Derived column names appended to CSV exports.
const (
	ColEmailDomain    = "Email_Domain"
	ColAcademicYear   = "Academic_Year"
	ColEducationLevel = "Education_Level"
)

// FieldSpec describes one expected CSV column.
type FieldSpec struct {
	Name     string // Header name after whitespace trimming
	Required bool   // Load fails when the column is absent
}

// SourceInfo contains display information about a CSV source.
type SourceInfo struct {
	Key         string // Unique identifier: "manual", "everybody", "members"
	Label       string // Display name: "University-wide"
	DefaultFile string // File name used when config has no override
}

// SourceDefinition contains everything needed to load one CSV source.
type SourceDefinition struct {
	Info       SourceInfo
	FieldSpecs []FieldSpec

	EmailColumn     string // Column fed to the classifier and email exports
	NameColumn      string // Optional; empty means the source has no names
	EducationColumn string // Optional; empty means every row is NotSpecified
}

// RequiredColumns returns the names of all required field specs.
func (d SourceDefinition) RequiredColumns() []string {
	var cols []string
	for _, spec := range d.FieldSpecs {
		if spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

// Member is one derived roster row. Values holds every raw cell aligned
// with the owning Roster's Columns.
type Member struct {
	Line           int // 1-based CSV line number, header is line 1
	Name           null.String
	Email          null.String
	EducationLevel string
	AcademicYear   Classification
	EmailDomain    string
	Values         []null.String
}

// Year returns the display label of the member's academic year.
func (m Member) Year() AcademicYear {
	return m.AcademicYear.Label()
}

// Roster is an immutable, ordered set of members loaded from one source.
type Roster struct {
	Source   SourceInfo
	Version  uuid.UUID // Changes whenever the underlying file content changes
	Path     string
	LoadedAt time.Time
	Columns  []string
	Members  []Member

	index map[string]int
}

// Len returns the number of rows.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Members)
}

// HasColumn reports whether the source CSV had the named column.
func (r *Roster) HasColumn(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Value returns the raw cell for column name on m.
// The result is null when the column does not exist.
func (r *Roster) Value(m Member, name string) null.String {
	i, ok := r.index[name]
	if !ok || i >= len(m.Values) {
		return null.String{}
	}
	return m.Values[i]
}

// Dataset groups the current roster of every registered source.
type Dataset struct {
	Rosters map[string]*Roster
}

// Get returns the roster for key, or nil.
func (d *Dataset) Get(key string) *Roster {
	if d == nil {
		return nil
	}
	return d.Rosters[key]
}
