package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// PageContext carries the per-request values every page needs.
type PageContext struct {
	Lang      string
	Title     string
	Languages []LanguageOption
}

const styles = `body{font-family:system-ui,sans-serif;max-width:40rem;margin:2rem auto;padding:0 1rem;color:#222}` +
	`h1{color:#b3261e}.result{font-size:2rem;font-weight:bold;color:#1b5e20}` +
	`.error{color:#b3261e}nav a{margin-right:.5rem}nav a.active{font-weight:bold}` +
	`table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.25rem .5rem}`

// Layout wraps body in the shared HTML document.
func Layout(page PageContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!doctype html>")
		h.raw(`<html lang="`)
		h.text(page.Lang)
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", "", page.Title)
		h.raw("<style>" + styles + "</style></head><body>")
		if len(page.Languages) > 0 {
			h.raw(`<nav class="languages">`)
			for _, option := range page.Languages {
				class := ""
				if option.Active {
					class = ` class="active"`
				}
				h.raw(`<a href="`)
				h.text(option.URL)
				h.raw(`" hreflang="`)
				h.text(option.Tag)
				h.raw(`"` + class + `>`)
				h.text(option.Label)
				h.raw("</a>")
			}
			h.raw("</nav>")
		}
		h.element("h1", "", page.Title)
		h.raw("<main>")
		h.render(ctx, body)
		h.raw("</main></body></html>")
		return h.err
	})
}
