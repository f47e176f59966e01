package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates markup and remembers the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// element writes <tag attrs>escaped text</tag>.
func (h *htmlWriter) element(tag, attrs, content string) {
	h.raw("<" + tag)
	if attrs != "" {
		h.raw(" " + attrs)
	}
	h.raw(">")
	h.text(content)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) list(class string, items []string, empty string) {
	h.raw(`<ul class="` + class + `">`)
	if len(items) == 0 {
		h.element("li", `class="empty"`, empty)
	}
	for _, item := range items {
		h.element("li", "", item)
	}
	h.raw("</ul>")
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
