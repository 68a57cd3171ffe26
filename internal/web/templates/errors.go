package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/gdgdash/internal/core"
)

// ErrorAlert renders a coded error message fragment.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		b.raw(`<div class="alert" role="alert"><strong>`)
		b.text(message)
		b.raw(`</strong>`)
		if action != "" {
			b.raw(`<p>`)
			b.text(action)
			b.raw(`</p>`)
		}
		b.raw(`<small>Code: `)
		b.text(code)
		b.raw(`</small></div>`)
	})
}

// ErrorPage renders a full page around an error alert.
func ErrorPage(sidebar SidebarParams, msg core.UserMessage) templ.Component {
	return Layout("Error", sidebar, ErrorAlert(msg.Message, msg.Action, msg.Code))
}
