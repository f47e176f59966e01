package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorPage renders a generic failure message.
func ErrorPage(page PageContext, message string) templ.Component {
	return Layout(page, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.element("p", `class="error" role="alert"`, message)
		return h.err
	}))
}
