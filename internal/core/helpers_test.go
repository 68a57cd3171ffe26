package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

// testManual mirrors the manual collection source without importing the
// sources package, which would be an import cycle.
var testManual = SourceDefinition{
	Info: SourceInfo{Key: "manual", Label: "Manual Collection", DefaultFile: "manual.csv"},
	FieldSpecs: []FieldSpec{
		{Name: "Name", Required: true},
		{Name: "Email", Required: true},
		{Name: "Under_Graduate", Required: true},
		{Name: "Gender"},
	},
	EmailColumn:     "Email",
	NameColumn:      "Name",
	EducationColumn: "Under_Graduate",
}

var testMembers = SourceDefinition{
	Info:        SourceInfo{Key: "members", Label: "GDG Members", DefaultFile: "members.csv"},
	FieldSpecs:  []FieldSpec{{Name: "Email IDs", Required: true}},
	EmailColumn: "Email IDs",
}

func mustParse(t *testing.T, def SourceDefinition, data string) *Roster {
	t.Helper()
	r, err := ParseRoster([]byte(data), def)
	require.NoError(t, err)
	return r
}

// member builds a derived member the way the loader does.
func member(name, email, education string) Member {
	m := Member{EducationLevel: NotSpecified}
	if name != "" {
		m.Name = null.StringFrom(name)
	}
	if email != "" {
		m.Email = null.StringFrom(email)
	}
	if education != "" {
		m.EducationLevel = education
	}
	m.EmailDomain = EmailDomain(m.Email)
	m.AcademicYear = Classify(m.Email)
	return m
}

func names(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name.String
	}
	return out
}
