// Package templates renders the dashboard's HTML.
//
// Components are templ.Component values built with templ.ComponentFunc, so
// handlers render them the same way as generated templ code:
//
//	templates.HomePage(sidebar, params).Render(r.Context(), w)
//
// All text goes through templ.EscapeString and every href through
// templ.URL.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// builder writes HTML and remembers the first write error.
type builder struct {
	w   io.Writer
	err error
}

func component(fn func(ctx context.Context, b *builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{w: w}
		fn(ctx, b)
		return b.err
	})
}

// raw writes trusted markup.
func (b *builder) raw(s string) {
	if b.err != nil {
		return
	}
	_, b.err = io.WriteString(b.w, s)
}

// text writes escaped text.
func (b *builder) text(s string) {
	b.raw(templ.EscapeString(s))
}

func (b *builder) textf(format string, args ...any) {
	b.text(fmt.Sprintf(format, args...))
}

// attr writes ` name="value"` with the value escaped.
func (b *builder) attr(name, value string) {
	b.raw(" " + name + `="`)
	b.text(value)
	b.raw(`"`)
}

// href writes an href attribute through templ's URL sanitizer.
func (b *builder) href(u string) {
	b.attr("href", string(templ.URL(u)))
}

func (b *builder) render(ctx context.Context, c templ.Component) {
	if b.err != nil || c == nil {
		return
	}
	b.err = c.Render(ctx, b.w)
}

// withQuery returns path with q encoded, or path alone when q is empty.
func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
