package core

import "sort"

// GenderColumn is the optional manual-collection column behind the gender chart.
const GenderColumn = "Gender"

// Summary is the metrics row of the analytics page.
type Summary struct {
	Total          int `json:"total"`
	Undergraduates int `json:"undergraduates"`
	Graduates      int `json:"graduates"`
	ActiveMembers  int `json:"active_members"`
}

// Summarize counts the filtered view; activeMembers is the member roster size.
func Summarize(view []Member, activeMembers int) Summary {
	s := Summary{Total: len(view), ActiveMembers: activeMembers}
	for _, m := range view {
		switch m.EducationLevel {
		case EducationUndergraduate:
			s.Undergraduates++
		case EducationGraduate:
			s.Graduates++
		}
	}
	return s
}

// Bucket is one slice of a categorical distribution.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution counts values, largest first; equal counts keep the order
// in which the values first appeared. Percentages are of the values counted.
func Distribution(values []string) []Bucket {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]Bucket, len(order))
	for i, label := range order {
		p, _ := Percent(counts[label], len(values))
		out[i] = Bucket{Label: label, Count: counts[label], Percent: p}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// EducationDistribution breaks the view down by education level.
func EducationDistribution(view []Member) []Bucket {
	values := make([]string, len(view))
	for i, m := range view {
		values[i] = m.EducationLevel
	}
	return Distribution(values)
}

// DomainDistribution returns the limit most common email domains.
// Rows with no domain count under the empty label.
func DomainDistribution(view []Member, limit int) []Bucket {
	values := make([]string, len(view))
	for i, m := range view {
		values[i] = m.EmailDomain
	}
	buckets := Distribution(values)
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

// GenderDistribution breaks the view down by the Gender column, dropping
// nulls. ok is false when the roster has no such column.
func GenderDistribution(r *Roster, view []Member) (buckets []Bucket, ok bool) {
	if r == nil || !r.HasColumn(GenderColumn) {
		return nil, false
	}
	var values []string
	for _, m := range view {
		if v := r.Value(m, GenderColumn); v.Valid {
			values = append(values, v.String)
		}
	}
	return Distribution(values), true
}
