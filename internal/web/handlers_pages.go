package web

import (
	"net/http"
	"net/url"

	"github.com/JonMunkholm/gdgdash/internal/core"
	"github.com/JonMunkholm/gdgdash/internal/web/templates"
)

// Element ids swapped by partial reloads.
const (
	targetMemberDetails = "member-details"
	targetDirectory     = "directory-table"
	targetAnalytics     = "analytics-body"
)

// handleHome renders the quick actions and the member details table.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := readRosterQuery(r, core.SortName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.service.Directory(ctx, viewOptions(f))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	setVersion(w, res.Roster.Version)

	table := templates.MemberTableParams{
		Members:   res.Members,
		Total:     res.Total,
		ExportURL: exportURL(f),
	}
	if isHTMX(r) {
		render(w, r, templates.MemberTable(table))
		return
	}

	university, err := s.service.EmailList(ctx, core.SourceEverybody)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	members, err := s.service.EmailList(ctx, core.SourceMembers)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	render(w, r, templates.HomePage(s.sidebar(r, templates.PageHome), templates.HomeParams{
		UniversityEmails: university.Joined,
		MemberEmails:     members.Joined,
		Form: templates.FilterFormParams{
			Action:     "/",
			Target:     targetMemberDetails,
			Filter:     f,
			Levels:     res.Levels,
			ShowSearch: true,
			ShowSort:   true,
		},
		Table: table,
	}))
}

// handleDirectory renders the searchable directory with the year column.
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	f, err := readRosterQuery(r, core.SortName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.service.Directory(r.Context(), viewOptions(f))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	setVersion(w, res.Roster.Version)

	table := templates.MemberTableParams{
		Members:   res.Members,
		Total:     res.Total,
		ShowYear:  true,
		ExportURL: exportURL(f),
	}
	if isHTMX(r) {
		render(w, r, templates.MemberTable(table))
		return
	}

	render(w, r, templates.DirectoryPage(s.sidebar(r, templates.PageDirectory), templates.DirectoryParams{
		Form: templates.FilterFormParams{
			Action:     "/directory",
			Target:     targetDirectory,
			Filter:     f,
			Levels:     res.Levels,
			ShowSearch: true,
			ShowSort:   true,
			ShowYear:   true,
		},
		Table: table,
	}))
}

// handleAnalytics renders the metrics row and the selected chart.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	f, chart, err := readAnalyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	report, err := s.service.Analytics(r.Context(), viewOptions(f))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	setVersion(w, report.Version)

	params := templates.AnalyticsParams{
		Report: report,
		Chart:  chart,
		Form: templates.FilterFormParams{
			Action:   "/analytics",
			Target:   targetAnalytics,
			Filter:   f,
			Levels:   report.Levels,
			Hidden:   url.Values{"chart": {chart}},
			ShowYear: true,
		},
	}
	if isHTMX(r) {
		render(w, r, templates.AnalyticsPartial(params))
		return
	}
	render(w, r, templates.AnalyticsPage(s.sidebar(r, templates.PageAnalytics), params))
}

// handleEmails renders the selected email list with copy and download actions.
func (s *Server) handleEmails(w http.ResponseWriter, r *http.Request) {
	list, err := readEmailsQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.service.EmailList(r.Context(), resolveList(list))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	label := "University Emails"
	if list == listMembers {
		label = "Member Emails"
	}

	render(w, r, templates.EmailsPage(s.sidebar(r, templates.PageEmails), templates.EmailsParams{
		Options: []templates.EmailListOption{
			{Key: listUniversity, Label: "University-wide", Selected: list == listUniversity},
			{Key: listMembers, Label: "GDG Members", Selected: list == listMembers},
		},
		Label:       label,
		Emails:      res.Joined,
		Count:       len(res.Emails),
		DownloadURL: "/api/emails/" + list + "?download=1",
	}))
}
