package web

// This file contains shared utilities and helper functions used across handlers.

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/JonMunkholm/gdgdash/internal/core"
	"github.com/JonMunkholm/gdgdash/internal/logging"
	"github.com/JonMunkholm/gdgdash/internal/web/templates"
)

// versionHeader carries the Version of the roster a response was built from.
const versionHeader = "X-Roster-Version"

// Email list names used by the email management page.
const (
	listUniversity = "university"
	listMembers    = "members"
)

// listSources maps email list names and source keys to source keys.
var listSources = map[string]string{
	listUniversity:       core.SourceEverybody,
	listMembers:          core.SourceMembers,
	core.SourceEverybody: core.SourceEverybody,
	core.SourceManual:    core.SourceManual,
}

// downloadNames are the .txt file names of downloaded email lists.
var downloadNames = map[string]string{
	core.SourceEverybody: "university_emails.txt",
	core.SourceMembers:   "member_emails.txt",
	core.SourceManual:    "manual_emails.txt",
}

// resolveList maps a list name or source key to a source key. Unknown
// names pass through so the service reports them as unknown sources.
func resolveList(name string) string {
	if key, ok := listSources[name]; ok {
		return key
	}
	return name
}

// sidebar builds the sidebar for the active page. Source errors are shown
// inline rather than failing the page.
func (s *Server) sidebar(r *http.Request, active string) templates.SidebarParams {
	return templates.SidebarParams{
		Active:  active,
		Sources: s.service.Sources(r.Context()),
	}
}

// render writes an HTML component. Errors after the first byte cannot
// change the status, so they are only logged.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// writeJSONStatus is writeJSON with a non-200 status.
func writeJSONStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

func setVersion(w http.ResponseWriter, version uuid.UUID) {
	w.Header().Set(versionHeader, version.String())
}

// wantsDownload reports whether ?download= asks for an attachment.
func wantsDownload(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("download"))
	return err == nil && v
}

func attachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// exportURL links the CSV export of the current filter.
func exportURL(f templates.Filter) string {
	q := f.Query()
	if enc := q.Encode(); enc != "" {
		return "/api/export?" + enc
	}
	return "/api/export"
}
