package core

import (
	"sort"
	"strings"
)

// EmailSet is the set of present emails of a roster. Membership is an
// exact, case-sensitive string match.
type EmailSet map[string]struct{}

// NewEmailSet collects the non-null emails of members.
func NewEmailSet(members []Member) EmailSet {
	set := make(EmailSet, len(members))
	for _, m := range members {
		if m.Email.Valid {
			set[m.Email.String] = struct{}{}
		}
	}
	return set
}

// Contains reports whether m's email is in the set. Null emails never are.
func (s EmailSet) Contains(m Member) bool {
	if !m.Email.Valid {
		return false
	}
	_, ok := s[m.Email.String]
	return ok
}

// Partition splits members into those in the set and the rest, keeping order.
func (s EmailSet) Partition(members []Member) (in, out []Member) {
	for _, m := range members {
		if s.Contains(m) {
			in = append(in, m)
		} else {
			out = append(out, m)
		}
	}
	return in, out
}

// YearCount is the number of rows with one academic year label.
type YearCount struct {
	Year  AcademicYear `json:"year"`
	Count int          `json:"count"`
}

// CountByYear groups members by academic year label, largest first.
// Equal counts keep canonical year order.
func CountByYear(members []Member) []YearCount {
	counts := make(map[AcademicYear]int)
	for _, m := range members {
		counts[m.Year()]++
	}

	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return yearRank(out[i].Year) < yearRank(out[j].Year)
	})
	return out
}

// YearShare is a year count with its percentage of some total.
type YearShare struct {
	Year    AcademicYear `json:"year"`
	Count   int          `json:"count"`
	Percent float64      `json:"percent"`
}

// MembershipRate is the share of a year's students who are members.
type MembershipRate struct {
	Year    AcademicYear `json:"year"`
	Members int          `json:"members"`
	Total   int          `json:"total"`
	Rate    float64      `json:"rate"`
}

// MembershipBreakdown is the year-wise member / non-member comparison.
type MembershipBreakdown struct {
	Members        []YearCount      `json:"members"`
	NonMembers     []YearCount      `json:"non_members"`
	MemberShare    []YearShare      `json:"member_share"`
	NonMemberShare []YearShare      `json:"non_member_share"`
	Rates          []MembershipRate `json:"rates"`
}

// BreakdownByYear partitions view against set and compares the two sides
// per academic year. Member shares are relative to activeMembers (the size
// of the member roster). Non-member shares are relative to the number of
// distinct non-member emails, with every null email counting as one value,
// while the counts themselves are per row, so duplicated emails can push a
// share past 100. Buckets whose denominator is zero are left out.
func BreakdownByYear(view []Member, set EmailSet, activeMembers int) MembershipBreakdown {
	in, out := set.Partition(view)

	b := MembershipBreakdown{
		Members:    CountByYear(in),
		NonMembers: CountByYear(out),
	}
	b.MemberShare = shares(b.Members, activeMembers)
	b.NonMemberShare = shares(b.NonMembers, distinctEmails(out))
	b.Rates = rates(b.Members, b.NonMembers)
	return b
}

// distinctEmails counts the different emails of members. All null emails
// together count once.
func distinctEmails(members []Member) int {
	seen := make(map[string]struct{}, len(members))
	nulls := 0
	for _, m := range members {
		if !m.Email.Valid {
			nulls = 1
			continue
		}
		seen[m.Email.String] = struct{}{}
	}
	return len(seen) + nulls
}

func shares(counts []YearCount, total int) []YearShare {
	out := make([]YearShare, 0, len(counts))
	for _, c := range counts {
		if p, ok := Percent(c.Count, total); ok {
			out = append(out, YearShare{Year: c.Year, Count: c.Count, Percent: p})
		}
	}
	return out
}

// rates computes one rate per year label seen on either side, in
// canonical year order.
func rates(members, nonMembers []YearCount) []MembershipRate {
	m := make(map[AcademicYear]int, len(members))
	totals := make(map[AcademicYear]int, len(members)+len(nonMembers))
	for _, c := range members {
		m[c.Year] += c.Count
		totals[c.Year] += c.Count
	}
	for _, c := range nonMembers {
		totals[c.Year] += c.Count
	}

	years := make([]AcademicYear, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		if ri, rj := yearRank(years[i]), yearRank(years[j]); ri != rj {
			return ri < rj
		}
		return years[i] < years[j]
	})

	out := make([]MembershipRate, 0, len(years))
	for _, y := range years {
		rate, ok := Percent(m[y], totals[y])
		if !ok {
			continue
		}
		out = append(out, MembershipRate{Year: y, Members: m[y], Total: totals[y], Rate: rate})
	}
	return out
}

// Percent returns n/total*100. ok is false when total is not positive.
func Percent(n, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	return float64(n) / float64(total) * 100, true
}

// EmailSeparator joins exported email lists.
const EmailSeparator = "; "

// EmailList returns the present emails of members in row order.
func EmailList(members []Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m.Email.Valid {
			out = append(out, m.Email.String)
		}
	}
	return out
}

// JoinEmails returns the "; "-joined email list of members.
func JoinEmails(members []Member) string {
	return strings.Join(EmailList(members), EmailSeparator)
}
