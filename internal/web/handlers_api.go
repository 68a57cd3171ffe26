package web

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/JonMunkholm/gdgdash/internal/core"
	"github.com/JonMunkholm/gdgdash/internal/logging"
)

// memberJSON is the API form of a roster row. Missing names and emails
// encode as null.
type memberJSON struct {
	Line           int               `json:"line"`
	Name           null.String       `json:"name"`
	Email          null.String       `json:"email"`
	EducationLevel string            `json:"education_level"`
	AcademicYear   core.AcademicYear `json:"academic_year"`
	EmailDomain    string            `json:"email_domain"`
}

type membersResponse struct {
	Version uuid.UUID    `json:"version"`
	Total   int          `json:"total"`
	Count   int          `json:"count"`
	Members []memberJSON `json:"members"`
}

// handleListSources returns the load state of every source.
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.Sources(r.Context()))
}

// handleReload drops cached rosters and reloads every source.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.service.Reload()
	if err := s.service.Preload(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("rosters reloaded")
	writeJSON(w, r, s.service.Sources(r.Context()))
}

// handleMembers returns the filtered, sorted manual roster.
func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	f, err := readRosterQuery(r, core.SortNone)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.service.Directory(r.Context(), viewOptions(f))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := membersResponse{
		Version: res.Roster.Version,
		Total:   res.Total,
		Count:   len(res.Members),
		Members: make([]memberJSON, len(res.Members)),
	}
	for i, m := range res.Members {
		out.Members[i] = memberJSON{
			Line:           m.Line,
			Name:           m.Name,
			Email:          m.Email,
			EducationLevel: m.EducationLevel,
			AcademicYear:   m.Year(),
			EmailDomain:    m.EmailDomain,
		}
	}

	setVersion(w, res.Roster.Version)
	writeJSON(w, r, out)
}

// handleAnalyticsJSON returns every aggregate of the analytics page.
func (s *Server) handleAnalyticsJSON(w http.ResponseWriter, r *http.Request) {
	f, err := readRosterQuery(r, core.SortNone)
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
	writeJSON(w, r, report)
}

// handleEmailList returns a source's "; "-joined email list as text, as
// a .txt attachment with ?download=1, or as JSON when asked for.
func (s *Server) handleEmailList(w http.ResponseWriter, r *http.Request) {
	key := resolveList(chi.URLParam(r, "source"))

	res, err := s.service.EmailList(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, r, res)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if wantsDownload(r) {
		attachment(w, downloadNames[key])
	}
	_, _ = w.Write([]byte(res.Joined))
}

// handleExport streams the filtered manual roster as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := readRosterQuery(r, core.SortNone)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.service.Directory(r.Context(), viewOptions(f))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := core.WriteCSV(&buf, res.Roster, res.Members); err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("roster exported", "rows", len(res.Members), "total", res.Total)

	setVersion(w, res.Roster.Version)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	attachment(w, s.cfg.Export.FileName)
	_, _ = w.Write(buf.Bytes())
}

// handleHealth reports liveness and how many sources currently load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	statuses := s.service.Sources(r.Context())
	healthy := 0
	for _, st := range statuses {
		if st.Error == "" {
			healthy++
		}
	}

	status, code := "ok", http.StatusOK
	if healthy < len(statuses) {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	writeJSONStatus(w, r, code, map[string]any{
		"status":  status,
		"sources": len(statuses),
		"healthy": healthy,
	})
}
