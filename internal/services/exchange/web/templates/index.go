package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// IndexView provides data for the selection form.
type IndexView struct {
	Participants []string
	Selected     string
	Receiver     string
	Error        string
}

// IndexPage renders the selection form and, when present, the outcome of
// the last submit.
func IndexPage(page PageContext, view IndexView, loc Localizer) templ.Component {
	return Layout(page, indexBody(view, loc))
}

func indexBody(view IndexView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form method="post" action="/">`)
		h.element("label", `for="nombre"`, T(loc, "form.heading"))
		h.raw(`<select id="nombre" name="nombre" required>`)
		h.element("option", `value=""`, T(loc, "form.placeholder"))
		for _, name := range view.Participants {
			h.raw(`<option value="`)
			h.text(name)
			h.raw(`"`)
			if name == view.Selected {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(name)
			h.raw("</option>")
		}
		h.raw("</select>")
		h.element("button", `type="submit"`, T(loc, "form.submit"))
		h.raw("</form>")

		if view.Error != "" {
			h.element("p", `class="error" role="alert"`, view.Error)
		}
		if view.Receiver != "" {
			h.raw(`<section class="outcome">`)
			h.element("p", `class="greeting"`, T(loc, "result.greeting", view.Selected))
			h.element("p", "", T(loc, "result.heading"))
			h.element("p", `class="result"`, view.Receiver)
			h.element("p", `class="secret"`, T(loc, "result.keep_secret"))
			h.raw("</section>")
		}
		return h.err
	})
}
