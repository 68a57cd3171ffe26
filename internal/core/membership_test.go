package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailSet(t *testing.T) {
	set := NewEmailSet([]Member{
		member("", "f20210150@x.y", ""),
		member("", "", ""),
	})

	assert.Len(t, set, 1)
	assert.True(t, set.Contains(member("", "f20210150@x.y", "")))
	assert.False(t, set.Contains(member("", "F20210150@x.y", "")), "match is case-sensitive")
	assert.False(t, set.Contains(member("", "", "")), "null emails are never members")
}

func TestEmailSet_Partition(t *testing.T) {
	view := sampleView()
	set := NewEmailSet([]Member{member("", "f20230011@x.y", ""), member("", "staff@y.z", "")})

	in, out := set.Partition(view)

	assert.Equal(t, []string{"Chen", "Dara"}, names(in))
	assert.Equal(t, []string{"asha", "", "Ben"}, names(out))
	assert.Equal(t, len(view), len(in)+len(out))
}

func TestCountByYear(t *testing.T) {
	members := []Member{
		member("", "f20210001@x.y", ""),
		member("", "prof@x.y", ""),
		member("", "f20240001@x.y", ""),
		member("", "f20210002@x.y", ""),
		member("", "f20240002@x.y", ""),
		member("", "f20190001@x.y", ""),
	}

	got := CountByYear(members)

	assert.Equal(t, []YearCount{
		{Year: FirstYear, Count: 2},
		{Year: FourthYear, Count: 2},
		{Year: Graduate, Count: 1},
		{Year: OtherYear, Count: 1},
	}, got)
	assert.Empty(t, CountByYear(nil))
}

func TestBreakdownByYear(t *testing.T) {
	view := []Member{
		member("", "f20210001@x.y", ""),
		member("", "f20210002@x.y", ""),
		member("", "f20230001@x.y", ""),
		member("", "f20230002@x.y", ""),
		member("", "", ""),
	}
	roster := []Member{
		member("", "f20210001@x.y", ""),
		member("", "f20230001@x.y", ""),
		member("", "f20230002@x.y", ""),
		member("", "someone@else.org", ""),
	}

	b := BreakdownByYear(view, NewEmailSet(roster), len(roster))

	assert.Equal(t, []YearCount{{SecondYear, 2}, {FourthYear, 1}}, b.Members)
	assert.Equal(t, []YearCount{{FourthYear, 1}, {OtherYear, 1}}, b.NonMembers)

	require.Len(t, b.MemberShare, 2)
	assert.InDelta(t, 50.0, b.MemberShare[0].Percent, 1e-9)
	assert.InDelta(t, 25.0, b.MemberShare[1].Percent, 1e-9)

	require.Len(t, b.NonMemberShare, 2)
	assert.InDelta(t, 50.0, b.NonMemberShare[0].Percent, 1e-9)

	assert.Equal(t, []MembershipRate{
		{Year: SecondYear, Members: 2, Total: 2, Rate: 100},
		{Year: FourthYear, Members: 1, Total: 2, Rate: 50},
		{Year: OtherYear, Members: 0, Total: 1, Rate: 0},
	}, b.Rates)
}

func TestBreakdownByYear_DuplicateNonMembers(t *testing.T) {
	view := []Member{
		member("", "f20210001@x.y", ""),
		member("", "f20210001@x.y", ""),
		member("", "f20230001@x.y", ""),
		member("", "", ""),
		member("", "", ""),
	}

	b := BreakdownByYear(view, NewEmailSet(nil), 0)

	assert.Equal(t, []YearCount{{FourthYear, 2}, {OtherYear, 2}, {SecondYear, 1}}, b.NonMembers)
	require.Len(t, b.NonMemberShare, 3)
	// Three distinct values: two emails and null.
	assert.InDelta(t, 200.0/3, b.NonMemberShare[0].Percent, 1e-9)
	assert.InDelta(t, 100.0/3, b.NonMemberShare[2].Percent, 1e-9)
}

func TestDistinctEmails(t *testing.T) {
	tests := []struct {
		name    string
		members []Member
		want    int
	}{
		{"empty", nil, 0},
		{"duplicates count once", []Member{member("", "a@x.y", ""), member("", "a@x.y", "")}, 1},
		{"nulls count once", []Member{member("", "", ""), member("", "", ""), member("", "b@x.y", "")}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, distinctEmails(tt.members))
		})
	}
}

func TestBreakdownByYear_NoMembers(t *testing.T) {
	view := []Member{member("", "f20210001@x.y", "")}

	b := BreakdownByYear(view, NewEmailSet(nil), 0)

	assert.Empty(t, b.Members)
	assert.Empty(t, b.MemberShare, "zero active members leaves member shares out")
	assert.Len(t, b.NonMemberShare, 1)
	assert.InDelta(t, 100.0, b.NonMemberShare[0].Percent, 1e-9)
}

func TestBreakdownByYear_EmptyView(t *testing.T) {
	b := BreakdownByYear(nil, NewEmailSet([]Member{member("", "a@x.y", "")}), 1)

	assert.Empty(t, b.Members)
	assert.Empty(t, b.NonMembers)
	assert.Empty(t, b.NonMemberShare)
	assert.Empty(t, b.Rates)
}

func TestPercent(t *testing.T) {
	p, ok := Percent(1, 4)
	assert.True(t, ok)
	assert.InDelta(t, 25.0, p, 1e-9)

	_, ok = Percent(1, 0)
	assert.False(t, ok)
}

func TestJoinEmails(t *testing.T) {
	members := []Member{
		member("", "b@x.y", ""),
		member("", "", ""),
		member("", "a@x.y", ""),
		member("", "b@x.y", ""),
	}

	assert.Equal(t, []string{"b@x.y", "a@x.y", "b@x.y"}, EmailList(members))
	assert.Equal(t, "b@x.y; a@x.y; b@x.y", JoinEmails(members))
	assert.Equal(t, "", JoinEmails(nil))
	assert.Equal(t, "a@x.y", JoinEmails(members[2:3]))
}
