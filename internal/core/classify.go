package core

import (
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"
)

// AcademicYear is the display label for a student's year of study.
type AcademicYear string

const (
	FirstYear  AcademicYear = "First Year"
	SecondYear AcademicYear = "Second Year"
	ThirdYear  AcademicYear = "Third Year"
	FourthYear AcademicYear = "Fourth Year"
	Graduate   AcademicYear = "Graduate"
	OtherYear  AcademicYear = "Other"

	// AllYears is the year filter value that disables filtering.
	AllYears AcademicYear = "All Years"
)

// YearLabels lists every label Classify can produce, in display order.
var YearLabels = []AcademicYear{FirstYear, SecondYear, ThirdYear, FourthYear, Graduate, OtherYear}

// graduateCutoff is the last enrollment year counted as graduated.
const graduateCutoff = 2020

// cohortLabels maps enrollment years of current students to their label.
// Rolls forward by hand each academic year; unlisted cohorts are Other.
var cohortLabels = map[int]AcademicYear{
	2024: FirstYear,
	2023: SecondYear,
	2022: ThirdYear,
	2021: FourthYear,
}

// Reason says why an email could not be bucketed.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonMissing       Reason = "missing"        // null email
	ReasonMalformed     Reason = "malformed"      // no parsable year at runes 1-4
	ReasonUnknownCohort Reason = "unknown cohort" // parsed, but not a known cohort
)

// Classification is the tagged result of Classify: either bucketed into a
// label with the parsed cohort year, or unclassifiable with a reason.
type Classification struct {
	label  AcademicYear
	Cohort int
	Reason Reason
}

// Bucketed reports whether the email mapped onto a known label.
func (c Classification) Bucketed() bool {
	return c.Reason == ReasonNone && c.label != ""
}

// Label returns the display label. Unclassifiable results are Other.
func (c Classification) Label() AcademicYear {
	if !c.Bucketed() {
		return OtherYear
	}
	return c.label
}

func bucketed(label AcademicYear, cohort int) Classification {
	return Classification{label: label, Cohort: cohort}
}

func unclassifiable(reason Reason, cohort int) Classification {
	return Classification{Cohort: cohort, Reason: reason}
}

// Classify derives the academic year from an institutional email such as
// f20210150@dubai.bits-pilani.ac.in: one prefix character followed by the
// four-digit enrollment year. It never fails; anything it cannot read is
// unclassifiable.
func Classify(email null.String) Classification {
	if !email.Valid {
		return unclassifiable(ReasonMissing, 0)
	}

	runes := []rune(email.String)
	if len(runes) < 5 {
		return unclassifiable(ReasonMalformed, 0)
	}

	year, err := strconv.Atoi(strings.TrimSpace(string(runes[1:5])))
	if err != nil {
		return unclassifiable(ReasonMalformed, 0)
	}

	if year <= graduateCutoff {
		return bucketed(Graduate, year)
	}
	if label, ok := cohortLabels[year]; ok {
		return bucketed(label, year)
	}
	return unclassifiable(ReasonUnknownCohort, year)
}

// ClassifyString is Classify for a present email.
func ClassifyString(email string) Classification {
	return Classify(null.StringFrom(email))
}

// ParseAcademicYear matches a filter value against the known labels.
// "" and "All Years" return AllYears.
func ParseAcademicYear(s string) (AcademicYear, bool) {
	if s == "" || AcademicYear(s) == AllYears {
		return AllYears, true
	}
	for _, y := range YearLabels {
		if string(y) == s {
			return y, true
		}
	}
	return "", false
}

// yearRank orders labels for display; unknown labels sort last.
func yearRank(y AcademicYear) int {
	for i, l := range YearLabels {
		if l == y {
			return i
		}
	}
	return len(YearLabels)
}
