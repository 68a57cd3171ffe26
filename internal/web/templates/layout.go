package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/gdgdash/internal/core"
)

// Page keys used to highlight the active sidebar entry.
const (
	PageHome      = "home"
	PageEmails    = "emails"
	PageAnalytics = "analytics"
	PageDirectory = "directory"
)

// SidebarParams holds the data shown in the navigation sidebar.
type SidebarParams struct {
	Active  string
	Sources []core.SourceStatus
}

type navItem struct {
	key, label, path string
}

var navItems = []navItem{
	{PageHome, "Home", "/"},
	{PageEmails, "Email Management", "/emails"},
	{PageAnalytics, "Analytics Dashboard", "/analytics"},
	{PageDirectory, "Member Directory", "/directory"},
}

// Layout wraps content in the page shell.
func Layout(title string, sidebar SidebarParams, content templ.Component) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.raw(`<title>`)
		b.text(title)
		b.raw(` | GDG Members Analytics</title>`)
		b.raw(`<link rel="stylesheet" href="/static/app.css"><script src="/static/app.js" defer></script>`)
		b.raw(`</head><body><div class="shell">`)
		b.render(ctx, Sidebar(sidebar))
		b.raw(`<main class="content">`)
		b.render(ctx, content)
		b.raw(`</main></div></body></html>`)
	})
}

// Sidebar renders navigation and the load state of every source.
func Sidebar(p SidebarParams) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<nav class="sidebar"><h2>Navigation</h2><ul>`)
		for _, item := range navItems {
			b.raw(`<li><a`)
			b.href(item.path)
			if item.key == p.Active {
				b.raw(` class="active" aria-current="page"`)
			}
			b.raw(`>`)
			b.text(item.label)
			b.raw(`</a></li>`)
		}
		b.raw(`</ul>`)

		if len(p.Sources) > 0 {
			b.raw(`<h3>Data sources</h3><ul class="sources">`)
			for _, src := range p.Sources {
				if src.Error != "" {
					b.raw(`<li class="source-error"`)
					b.attr("title", src.Error)
					b.raw(`>`)
					b.text(src.Label)
					b.raw(`: unavailable</li>`)
					continue
				}
				b.raw(`<li>`)
				b.text(src.Label)
				b.textf(": %d rows", src.Rows)
				b.raw(`</li>`)
			}
			b.raw(`</ul>`)
		}
		b.raw(`<p class="help">Need help? Contact the GDG Tech Team.</p></nav>`)
	})
}

// Filter is the roster view state carried in page URLs.
type Filter struct {
	Search    string
	Education []string // nil selects every level
	Year      core.AcademicYear
	Sort      core.SortKey
}

// Query encodes the filter as URL parameters understood by the handlers.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Education != nil {
		q.Set("education_set", "1")
		for _, level := range f.Education {
			q.Add("education", level)
		}
	}
	if f.Year != "" && f.Year != core.AllYears {
		q.Set("year", string(f.Year))
	}
	if f.Sort != core.SortNone {
		q.Set("sort", string(f.Sort))
	}
	return q
}

func (f Filter) selected(level string) bool {
	if f.Education == nil {
		return true
	}
	for _, l := range f.Education {
		if l == level {
			return true
		}
	}
	return false
}

// FilterFormParams configures the filter bar above a roster table.
type FilterFormParams struct {
	Action string // Page the form submits to
	Target string // Element id replaced with the partial response
	Filter Filter
	Levels []string
	Hidden url.Values // Extra parameters kept across submits

	ShowSearch bool
	ShowSort   bool
	ShowYear   bool
}

// FilterForm renders search, education, year and sort controls.
func FilterForm(p FilterFormParams) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<form class="filters" method="get"`)
		b.attr("action", string(templ.URL(p.Action)))
		b.attr("data-target", p.Target)
		b.raw(`>`)
		for name, values := range p.Hidden {
			for _, v := range values {
				b.raw(`<input type="hidden"`)
				b.attr("name", name)
				b.attr("value", v)
				b.raw(`>`)
			}
		}

		if p.ShowSearch {
			b.raw(`<label class="search">Search by name or email<input type="search" name="q"`)
			b.attr("value", p.Filter.Search)
			b.raw(`></label>`)
		}

		b.raw(`<fieldset class="levels"><legend>Education Level</legend>`)
		b.raw(`<input type="hidden" name="education_set" value="1">`)
		for _, level := range p.Levels {
			b.raw(`<label><input type="checkbox" name="education"`)
			b.attr("value", level)
			if p.Filter.selected(level) {
				b.raw(` checked`)
			}
			b.raw(`>`)
			b.text(level)
			b.raw(`</label>`)
		}
		b.raw(`</fieldset>`)

		if p.ShowYear {
			b.raw(`<label>Academic Year<select name="year">`)
			years := append([]core.AcademicYear{core.AllYears}, core.YearLabels...)
			for _, y := range years {
				b.raw(`<option`)
				b.attr("value", string(y))
				if y == p.Filter.Year || (y == core.AllYears && p.Filter.Year == "") {
					b.raw(` selected`)
				}
				b.raw(`>`)
				b.text(string(y))
				b.raw(`</option>`)
			}
			b.raw(`</select></label>`)
		}

		if p.ShowSort {
			b.raw(`<label>Sort by<select name="sort">`)
			for _, k := range core.SortKeys {
				b.raw(`<option`)
				b.attr("value", string(k))
				if k == p.Filter.Sort {
					b.raw(` selected`)
				}
				b.raw(`>`)
				b.text(k.Label())
				b.raw(`</option>`)
			}
			b.raw(`</select></label>`)
		}

		b.raw(`<button type="submit">Apply</button></form>`)
	})
}

// MemberTableParams holds a filtered roster page.
type MemberTableParams struct {
	Members   []core.Member
	Total     int
	ShowYear  bool
	ExportURL string
}

// MemberTable renders the member rows with the export and copy actions.
func MemberTable(p MemberTableParams) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		if len(p.Members) == 0 {
			b.raw(`<p class="empty">No members match the current filters.</p>`)
		} else {
			b.raw(`<div class="table-wrap"><table><thead><tr><th>Name</th><th>Email</th><th>Education</th>`)
			if p.ShowYear {
				b.raw(`<th>Year</th>`)
			}
			b.raw(`</tr></thead><tbody>`)
			for _, m := range p.Members {
				b.raw(`<tr><td>`)
				b.text(m.Name.String)
				b.raw(`</td><td>`)
				b.text(m.Email.String)
				b.raw(`</td><td>`)
				b.text(m.EducationLevel)
				b.raw(`</td>`)
				if p.ShowYear {
					b.raw(`<td>`)
					b.text(string(m.Year()))
					b.raw(`</td>`)
				}
				b.raw(`</tr>`)
			}
			b.raw(`</tbody></table></div>`)
		}

		b.raw(`<div class="actions"><a class="button"`)
		b.href(p.ExportURL)
		b.raw(` download>Export to CSV</a>`)
		b.render(ctx, CopyButton("filtered-emails", "Copy Filtered Emails"))
		b.raw(`</div>`)
		b.render(ctx, EmailBox("filtered-emails", "Filtered emails", core.JoinEmails(p.Members), true))

		b.raw(`<p class="caption">`)
		b.textf("Showing %d members out of %d total members", len(p.Members), p.Total)
		b.raw(`</p>`)
	})
}

// CopyButton copies the text of the element with id target to the clipboard.
func CopyButton(target, label string) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<button type="button" class="copy"`)
		b.attr("data-copy", target)
		b.raw(`>`)
		b.text(label)
		b.raw(`</button>`)
	})
}

// EmailBox renders a read-only "; "-joined email list.
func EmailBox(id, label, emails string, hidden bool) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<label class="emails"`)
		if hidden {
			b.raw(` hidden`)
		}
		b.raw(`>`)
		b.text(label)
		b.raw(`<textarea readonly rows="8"`)
		b.attr("id", id)
		b.raw(`>`)
		b.text(emails)
		b.raw(`</textarea></label>`)
	})
}
