package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/gdgdash/internal/config"
	"github.com/JonMunkholm/gdgdash/internal/core"
	_ "github.com/JonMunkholm/gdgdash/internal/core/sources"
)

const (
	manualCSV = "Name,Email,Under_Graduate,Gender\n" +
		"Asha,f20210150@dubai.bits-pilani.ac.in,Under_Graduate,Female\n" +
		"Ben,f20230011@dubai.bits-pilani.ac.in,Under_Graduate,Male\n" +
		"Chen,h20190001@dubai.bits-pilani.ac.in,Graduate,Female\n" +
		"Dara,,,\n"
	everybodyCSV = "Email IDs\nf20210150@dubai.bits-pilani.ac.in\nf20230011@dubai.bits-pilani.ac.in\n"
	membersCSV   = "Email IDs\nf20210150@dubai.bits-pilani.ac.in\n"
)

func fixtureFiles() map[string]string {
	return map[string]string{
		"manual_data_collection.csv": manualCSV,
		"everybody.csv":              everybodyCSV,
		"members_current.csv":        membersCSV,
	}
}

// newTestServer serves files from a temp dir. env overrides config defaults.
func newTestServer(t *testing.T, files map[string]string, env map[string]string) *Server {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}

	vars := map[string]string{"DATA_DIR": dir, "RATE_LIMIT_ENABLED": "false"}
	for k, v := range env {
		vars[k] = v
	}
	cfg, err := config.LoadFrom(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
	require.NoError(t, err)

	svc, err := core.NewService(cfg)
	require.NoError(t, err)

	s := NewServer(svc, cfg)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func get(t *testing.T, s *Server, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHome(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Quick Actions")
	assert.Contains(t, body, "Copy All Emails")
	assert.Contains(t, body, "f20210150@dubai.bits-pilani.ac.in; f20230011@dubai.bits-pilani.ac.in")
	assert.Contains(t, body, "Showing 4 members out of 4 total members")
	assert.Contains(t, body, "Always use BCC")
	assert.NotEmpty(t, rec.Header().Get(versionHeader))
}

func TestHome_PartialReload(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/?education_set=1&education=Graduate", "HX-Request", "true")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Showing 1 members out of 4 total members")
	assert.Contains(t, body, "Chen")
}

func TestHome_NothingSelected(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/?education_set=1", "HX-Request", "true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No members match the current filters.")
}

func TestDirectory(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/directory?year=Second+Year")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Member Directory")
	assert.Contains(t, body, "<td>Ben</td>")
	assert.NotContains(t, body, "<td>Asha</td>")
	assert.Contains(t, body, "<td>Second Year</td>")
	assert.Contains(t, body, "/api/export?sort=name&amp;year=Second+Year")
}

func TestAnalytics(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "GDG Members Distribution by Year")
	assert.Contains(t, body, "Fourth Year: 100.0% (1 members)")

	rec = get(t, s, "/analytics?chart=gender", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gender Distribution")
	assert.Contains(t, rec.Body.String(), "Female")
}

func TestEmails(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/emails?list=members")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Member Emails")
	assert.Contains(t, body, `href="/api/emails/members?download=1"`)
	assert.Contains(t, body, "1 addresses")
}

func TestInvalidQuery(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown year", "/api/members?year=Fifth+Year"},
		{"unknown sort", "/api/members?sort=gender"},
		{"unknown chart", "/analytics?chart=pie"},
		{"unknown list", "/emails?list=alumni"},
		{"search too long", "/api/members?q=" + strings.Repeat("a", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target, "Accept", "application/json")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VAL001", decodeError(t, rec).Code)
		})
	}
}

func TestAPIMembers(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/api/members?sort=email")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Version string `json:"version"`
		Total   int    `json:"total"`
		Count   int    `json:"count"`
		Members []struct {
			Name         *string `json:"name"`
			Email        *string `json:"email"`
			AcademicYear string  `json:"academic_year"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, rec.Header().Get(versionHeader), resp.Version)
	require.Len(t, resp.Members, 4)
	assert.Equal(t, "Fourth Year", resp.Members[0].AcademicYear)
	assert.Nil(t, resp.Members[3].Email, "null emails sort last and encode as null")
	assert.Equal(t, "Other", resp.Members[3].AcademicYear)
}

func TestAPIAnalytics(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/api/analytics?education_set=1&education=Under_Graduate")
	require.Equal(t, http.StatusOK, rec.Code)

	var report core.AnalyticsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, core.Summary{Total: 2, Undergraduates: 2, ActiveMembers: 1}, report.Summary)
	assert.True(t, report.HasGender)
}

func TestAPIEmailList(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/api/emails/university")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "f20210150@dubai.bits-pilani.ac.in; f20230011@dubai.bits-pilani.ac.in", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Disposition"))

	rec = get(t, s, "/api/emails/members?download=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="member_emails.txt"`, rec.Header().Get("Content-Disposition"))

	rec = get(t, s, "/api/emails/everybody", "Accept", "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var list core.EmailListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Emails, 2)

	rec = get(t, s, "/api/emails/alumni")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SRC001", decodeError(t, rec).Code)
}

func TestAPIExport(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), map[string]string{"EXPORT_FILENAME": "roster.csv"})

	rec := get(t, s, "/api/export?q=asha")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="roster.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t,
		"Name,Email,Under_Graduate,Gender,Email_Domain,Academic_Year,Education_Level\n"+
			"Asha,f20210150@dubai.bits-pilani.ac.in,Under_Graduate,Female,dubai.bits-pilani.ac.in,Fourth Year,Under_Graduate\n",
		rec.Body.String())
}

func TestMissingSource(t *testing.T) {
	files := fixtureFiles()
	delete(files, "members_current.csv")
	s := newTestServer(t, files, nil)

	rec := get(t, s, "/analytics", "Accept", "text/html")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Code: FILE001")
	assert.Contains(t, rec.Body.String(), "GDG Members: unavailable")

	rec = get(t, s, "/analytics")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "A roster data file could not be found (FILE001)\n", rec.Body.String())

	rec = get(t, s, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)

	// The directory only needs the manual roster.
	rec = get(t, s, "/directory")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingColumn(t *testing.T) {
	files := fixtureFiles()
	files["manual_data_collection.csv"] = "Name,Email\nA,a@x.y\n"
	s := newTestServer(t, files, nil)

	rec := get(t, s, "/api/members")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "VAL002", decodeError(t, rec).Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sources":3,"healthy":3}`, rec.Body.String())
}

func TestSourcesAndReload(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	rec := get(t, s, "/api/sources")
	require.Equal(t, http.StatusOK, rec.Code)
	var before []core.SourceStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))
	require.Len(t, before, 3)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var after []core.SourceStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.Len(t, after, 3)
	assert.NotEqual(t, *before[0].Version, *after[0].Version)
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)
	rec := get(t, s, "/healthz")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, contentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))

	s = newTestServer(t, fixtureFiles(), map[string]string{"SECURITY_ENABLE_CSP": "false"})
	rec = get(t, s, "/healthz")
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), nil)

	for _, path := range []string{"/static/app.css", "/static/app.js"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Body.String(), path)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, fixtureFiles(), map[string]string{
		"RATE_LIMIT_ENABLED":             "true",
		"RATE_LIMIT_REQUESTS_PER_MINUTE": "3",
		"RATE_LIMIT_EXPORT":              "1",
	})

	rec := get(t, s, "/api/export")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s, "/api/export")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE001", decodeError(t, rec).Code)

	rec = get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = get(t, s, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "global limit counts every request")
}

func TestRateLimiter_Window(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.True(t, rl.allow("b"), "budgets are per client")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.allow("a"), "a new window refills the budget")

	rl.stop()
	rl.stop()
}
