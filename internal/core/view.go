package core

import (
	"sort"
	"strings"

	"github.com/volatiletech/null/v8"
	"golang.org/x/text/cases"
)

// SortKey names a column the roster view can sort by.
type SortKey string

const (
	SortNone      SortKey = ""
	SortName      SortKey = "name"
	SortEmail     SortKey = "email"
	SortEducation SortKey = "education_level"
)

// SortKeys lists the selectable sort keys in display order.
var SortKeys = []SortKey{SortName, SortEmail, SortEducation}

// ParseSortKey accepts a key or its display label ("Education Level").
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortNone, true
	case "name":
		return SortName, true
	case "email":
		return SortEmail, true
	case "education_level", "education level", "education":
		return SortEducation, true
	}
	return "", false
}

// Label returns the display label of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortName:
		return "Name"
	case SortEmail:
		return "Email"
	case SortEducation:
		return "Education Level"
	}
	return ""
}

// ViewOptions selects and orders roster rows.
type ViewOptions struct {
	// Education keeps rows whose level is listed. nil keeps every level;
	// an empty non-nil slice keeps nothing.
	Education []string

	// Year keeps rows with this display label. "" or AllYears disables it.
	Year AcademicYear

	// Search keeps rows whose name or email contains it, ignoring case.
	Search string

	SortBy SortKey
}

// Apply runs the education, year and search filters, then sorts.
// The input slice is never modified.
func (o ViewOptions) Apply(members []Member) []Member {
	out := FilterEducation(members, o.Education)
	out = FilterYear(out, o.Year)
	out = Search(out, o.Search)
	return SortMembers(out, o.SortBy)
}

// FilterEducation keeps members whose education level is in allowed.
// A nil allowed set keeps every member.
func FilterEducation(members []Member, allowed []string) []Member {
	if allowed == nil {
		return clone(members)
	}
	set := make(map[string]struct{}, len(allowed))
	for _, level := range allowed {
		set[level] = struct{}{}
	}

	out := make([]Member, 0, len(members))
	for _, m := range members {
		if _, ok := set[m.EducationLevel]; ok {
			out = append(out, m)
		}
	}
	return out
}

// FilterYear keeps members whose academic year label equals year.
func FilterYear(members []Member, year AcademicYear) []Member {
	if year == "" || year == AllYears {
		return clone(members)
	}
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if m.Year() == year {
			out = append(out, m)
		}
	}
	return out
}

// Search keeps members whose name or email contains query, ignoring case.
// Null names and emails never match. An empty query keeps everything.
func Search(members []Member, query string) []Member {
	if query == "" {
		return clone(members)
	}

	// Casers carry state, so each call folds with its own.
	fold := cases.Fold()
	needle := fold.String(query)
	contains := func(v null.String) bool {
		return v.Valid && strings.Contains(fold.String(v.String), needle)
	}

	out := make([]Member, 0, len(members))
	for _, m := range members {
		if contains(m.Name) || contains(m.Email) {
			out = append(out, m)
		}
	}
	return out
}

// SortMembers returns members stably sorted ascending by key.
// Comparison is byte-wise; null values sort after all present values.
func SortMembers(members []Member, key SortKey) []Member {
	out := clone(members)

	var field func(Member) null.String
	switch key {
	case SortName:
		field = func(m Member) null.String { return m.Name }
	case SortEmail:
		field = func(m Member) null.String { return m.Email }
	case SortEducation:
		field = func(m Member) null.String { return null.StringFrom(m.EducationLevel) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := field(out[i]), field(out[j])
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		return a.String < b.String
	})
	return out
}

// EducationLevels returns the distinct levels in order of first appearance.
func EducationLevels(members []Member) []string {
	seen := make(map[string]struct{})
	var levels []string
	for _, m := range members {
		if _, ok := seen[m.EducationLevel]; ok {
			continue
		}
		seen[m.EducationLevel] = struct{}{}
		levels = append(levels, m.EducationLevel)
	}
	return levels
}

func clone(members []Member) []Member {
	out := make([]Member, len(members))
	copy(out, members)
	return out
}
