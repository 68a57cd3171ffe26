package templates

import (
	"context"

	"github.com/a-h/templ"
)

// HomeParams holds the data for the home page.
type HomeParams struct {
	UniversityEmails string
	MemberEmails     string
	Form             FilterFormParams
	Table            MemberTableParams
}

// HomePage renders the welcome page with quick actions and member details.
func HomePage(sidebar SidebarParams, p HomeParams) templ.Component {
	return Layout("Home", sidebar, component(func(ctx context.Context, b *builder) {
		b.raw(`<header><h1>GDG Members Analytics</h1>`)
		b.raw(`<p>This application helps you manage and analyze GDG membership data efficiently.</p>`)
		b.raw(`<ul class="features">`)
		b.raw(`<li><a href="/emails"><strong>Email Management</strong></a>: easily manage and export email lists</li>`)
		b.raw(`<li><a href="/analytics"><strong>Analytics Dashboard</strong></a>: visualize membership data and trends</li>`)
		b.raw(`<li><a href="/directory"><strong>Member Directory</strong></a>: search and filter member information</li>`)
		b.raw(`</ul></header>`)

		b.raw(`<section><h2>Quick Actions</h2>`)
		b.render(ctx, EmailGuidelines())
		b.raw(`<div class="actions">`)
		b.render(ctx, CopyButton("all-emails", "Copy All Emails"))
		b.render(ctx, CopyButton("member-emails", "Copy Member Emails"))
		b.raw(`</div>`)
		b.render(ctx, EmailBox("all-emails", "University emails", p.UniversityEmails, true))
		b.render(ctx, EmailBox("member-emails", "Member emails", p.MemberEmails, true))
		b.raw(`</section>`)

		b.raw(`<section><h2>Member Details</h2>`)
		b.render(ctx, RosterSection(p.Form, p.Table))
		b.raw(`</section>`)
	}))
}

// RosterSection renders a filter form above its member table. The table
// sits in the form's target element so it can be swapped as a partial.
func RosterSection(form FilterFormParams, table MemberTableParams) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.render(ctx, FilterForm(form))
		b.raw(`<div`)
		b.attr("id", form.Target)
		b.raw(`>`)
		b.render(ctx, MemberTable(table))
		b.raw(`</div>`)
	})
}

// DirectoryParams holds the data for the member directory.
type DirectoryParams struct {
	Form  FilterFormParams
	Table MemberTableParams
}

// DirectoryPage renders the searchable member directory.
func DirectoryPage(sidebar SidebarParams, p DirectoryParams) templ.Component {
	return Layout("Member Directory", sidebar, component(func(ctx context.Context, b *builder) {
		b.raw(`<h1>Member Directory</h1>`)
		b.render(ctx, RosterSection(p.Form, p.Table))
	}))
}
