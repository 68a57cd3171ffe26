package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/gdgdash/internal/config"
	"github.com/JonMunkholm/gdgdash/internal/logging"
	"github.com/google/uuid"
)

// Keys of the sources the dashboard is built around.
const (
	SourceManual    = "manual"    // Roster analysed on every page
	SourceEverybody = "everybody" // University-wide email list
	SourceMembers   = "members"   // Current chapter members
)

// Service provides the dashboard's read-only operations over the rosters.
type Service struct {
	paths       map[string]string
	domainLimit int
	cache       *rosterCache
}

// NewService resolves the file of every registered source from cfg.
// The three core sources must be registered.
func NewService(cfg *config.Config) (*Service, error) {
	s := &Service{
		paths:       make(map[string]string),
		domainLimit: cfg.Export.DomainLimit,
		cache:       newRosterCache(),
	}

	for _, key := range []string{SourceManual, SourceEverybody, SourceMembers} {
		if _, ok := Get(key); !ok {
			return nil, fmt.Errorf("%w: %s is not registered", ErrUnknownSource, key)
		}
	}

	for _, def := range All() {
		file := cfg.Data.FileFor(def.Info.Key)
		if file == "" {
			file = def.Info.DefaultFile
		}
		s.paths[def.Info.Key] = cfg.Data.Path(file)
	}

	return s, nil
}

// Path returns the file a source is read from.
func (s *Service) Path(key string) string {
	return s.paths[key]
}

// Roster loads one source. Unchanged files are served from the cache.
func (s *Service) Roster(ctx context.Context, key string) (*Roster, error) {
	def, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, key)
	}

	roster, fresh, err := s.cache.load(ctx, s.paths[key], def)
	if err != nil {
		return nil, err
	}
	if fresh {
		logging.WithFields(ctx, "source", key, "version", roster.Version).
			Info("roster loaded", "path", roster.Path, "rows", roster.Len(), "columns", len(roster.Columns))
	}
	return roster, nil
}

// Dataset loads every registered source. Any failure fails the whole load.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{Rosters: make(map[string]*Roster)}
	for _, def := range All() {
		r, err := s.Roster(ctx, def.Info.Key)
		if err != nil {
			return nil, err
		}
		ds.Rosters[def.Info.Key] = r
	}
	return ds, nil
}

// Preload loads every source once so a broken or missing file fails
// startup rather than the first request.
func (s *Service) Preload(ctx context.Context) error {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return err
	}
	for _, def := range All() {
		r := ds.Get(def.Info.Key)
		logging.FromContext(ctx).Debug("source ready", "source", def.Info.Key, "rows", r.Len())
	}
	return nil
}

// Reload drops every cached roster so the next request parses from disk.
func (s *Service) Reload() {
	for key, path := range s.paths {
		s.cache.forget(key, path)
	}
}

// SourceStatus describes one source for the API and the sidebar.
type SourceStatus struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Path     string     `json:"path"`
	Rows     int        `json:"rows"`
	Version  *uuid.UUID `json:"version,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Sources reports the load state of every source. Unlike Dataset it does
// not fail; each broken source carries its user-facing error instead.
func (s *Service) Sources(ctx context.Context) []SourceStatus {
	defs := All()
	out := make([]SourceStatus, 0, len(defs))
	for _, def := range defs {
		st := SourceStatus{Key: def.Info.Key, Label: def.Info.Label, Path: s.paths[def.Info.Key]}
		r, err := s.Roster(ctx, def.Info.Key)
		if err != nil {
			st.Error = FormatUserError(err)
		} else {
			st.Rows = r.Len()
			st.Version = &r.Version
			st.LoadedAt = &r.LoadedAt
		}
		out = append(out, st)
	}
	return out
}

// DirectoryResult is a filtered, sorted page of the analysed roster.
type DirectoryResult struct {
	Roster  *Roster
	Members []Member
	Total   int      // Rows in the roster before filtering
	Levels  []string // Every education level in the roster
}

// Directory applies opts to the manual roster.
func (s *Service) Directory(ctx context.Context, opts ViewOptions) (*DirectoryResult, error) {
	r, err := s.Roster(ctx, SourceManual)
	if err != nil {
		return nil, err
	}
	return &DirectoryResult{
		Roster:  r,
		Members: opts.Apply(r.Members),
		Total:   r.Len(),
		Levels:  EducationLevels(r.Members),
	}, nil
}

// EducationLevels returns the distinct levels in the manual roster.
func (s *Service) EducationLevels(ctx context.Context) ([]string, error) {
	r, err := s.Roster(ctx, SourceManual)
	if err != nil {
		return nil, err
	}
	return EducationLevels(r.Members), nil
}

// AnalyticsReport is everything the analytics page charts.
type AnalyticsReport struct {
	Version   uuid.UUID           `json:"version"`
	Summary   Summary             `json:"summary"`
	Years     MembershipBreakdown `json:"years"`
	Education []Bucket            `json:"education"`
	Domains   []Bucket            `json:"domains"`
	Gender    []Bucket            `json:"gender,omitempty"`
	HasGender bool                `json:"has_gender"`
	Levels    []string            `json:"levels"`
}

// Analytics filters the manual roster by opts and aggregates it against
// the member roster.
func (s *Service) Analytics(ctx context.Context, opts ViewOptions) (*AnalyticsReport, error) {
	manual, err := s.Roster(ctx, SourceManual)
	if err != nil {
		return nil, err
	}
	members, err := s.Roster(ctx, SourceMembers)
	if err != nil {
		return nil, err
	}

	view := opts.Apply(manual.Members)
	set := NewEmailSet(members.Members)

	report := &AnalyticsReport{
		Version:   manual.Version,
		Summary:   Summarize(view, members.Len()),
		Years:     BreakdownByYear(view, set, members.Len()),
		Education: EducationDistribution(view),
		Domains:   DomainDistribution(view, s.domainLimit),
		Levels:    EducationLevels(manual.Members),
	}
	report.Gender, report.HasGender = GenderDistribution(manual, view)
	return report, nil
}

// EmailListResult is an exportable email list of one source.
type EmailListResult struct {
	Source SourceInfo `json:"source"`
	Emails []string   `json:"emails"`
	Joined string     `json:"joined"`
	Rows   int        `json:"rows"`
}

// EmailList returns the "; "-joined emails of a source in row order.
func (s *Service) EmailList(ctx context.Context, key string) (*EmailListResult, error) {
	r, err := s.Roster(ctx, key)
	if err != nil {
		return nil, err
	}
	emails := EmailList(r.Members)
	return &EmailListResult{
		Source: r.Source,
		Emails: emails,
		Joined: JoinEmails(r.Members),
		Rows:   r.Len(),
	}, nil
}
