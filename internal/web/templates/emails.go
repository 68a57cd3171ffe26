package templates

import (
	"context"

	"github.com/a-h/templ"
)

// EmailListOption is one entry of the list selector.
type EmailListOption struct {
	Key      string
	Label    string
	Selected bool
}

// EmailsParams holds the data for the email management page.
type EmailsParams struct {
	Options     []EmailListOption
	Label       string
	Emails      string
	Count       int
	DownloadURL string
}

// EmailGuidelines renders the privacy and signature rules for mass email.
func EmailGuidelines() templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<div class="guidelines"><h3>Email Usage Guidelines</h3>`)
		b.raw(`<blockquote><strong>Privacy Notice:</strong><ul>`)
		b.raw(`<li>Always use BCC when sending mass emails to protect member privacy</li>`)
		b.raw(`<li>This prevents recipients from seeing other members' email addresses</li>`)
		b.raw(`<li>Helps avoid unauthorized email collection</li></ul></blockquote>`)
		b.raw(`<blockquote><strong>Email Signature Requirement:</strong><ul>`)
		b.raw(`<li>All official communications must include the GDG signature</li>`)
		b.raw(`<li>This maintains professionalism and brand consistency</li>`)
		b.raw(`<li>Helps recipients identify official GDG communications</li></ul></blockquote></div>`)
	})
}

// EmailsPage renders the email list selector and the selected list.
func EmailsPage(sidebar SidebarParams, p EmailsParams) templ.Component {
	return Layout("Email Management", sidebar, component(func(ctx context.Context, b *builder) {
		b.raw(`<h1>Email Management</h1>`)
		b.render(ctx, EmailGuidelines())

		b.raw(`<form class="filters" method="get" action="/emails"><label>Select Email List<select name="list" data-submit>`)
		for _, opt := range p.Options {
			b.raw(`<option`)
			b.attr("value", opt.Key)
			if opt.Selected {
				b.raw(` selected`)
			}
			b.raw(`>`)
			b.text(opt.Label)
			b.raw(`</option>`)
		}
		b.raw(`</select></label><button type="submit">Show</button></form>`)

		b.render(ctx, EmailBox("email-list", p.Label, p.Emails, false))
		b.raw(`<div class="actions">`)
		b.render(ctx, CopyButton("email-list", "Copy All"))
		b.raw(`<a class="button"`)
		b.href(p.DownloadURL)
		b.raw(`>Download List</a></div>`)
		b.raw(`<p class="caption">`)
		b.textf("%d addresses", p.Count)
		b.raw(`</p>`)
	}))
}
