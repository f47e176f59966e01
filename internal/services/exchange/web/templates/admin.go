package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
)

// AdminPage renders every diagnostic view of the exchange.
func AdminPage(page PageContext, report domain.Report, loc Localizer) templ.Component {
	return Layout(page, adminBody(report, loc))
}

func adminBody(report domain.Report, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		none := T(loc, "admin.none")

		if report.Complete {
			h.element("p", `class="status complete"`, T(loc, "admin.complete"))
		} else {
			h.element("p", `class="status incomplete"`, T(loc, "admin.incomplete"))
		}

		h.element("h2", "", T(loc, "admin.assignments"))
		h.raw(`<table class="assignments"><thead><tr>`)
		h.element("th", "", T(loc, "admin.giver"))
		h.element("th", "", T(loc, "admin.receiver"))
		h.raw("</tr></thead><tbody>")
		for _, pair := range report.Assignments {
			h.raw("<tr>")
			h.element("td", "", pair.Giver)
			h.element("td", "", pair.Receiver)
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")

		sections := []struct {
			class string
			title string
			items []string
		}{
			{class: "participants", title: "admin.participants", items: report.Participants},
			{class: "assigned", title: "admin.assigned", items: report.Assigned},
			{class: "pending", title: "admin.pending", items: report.Pending},
			{class: "received", title: "admin.received", items: report.Received},
			{class: "not-received", title: "admin.not_received", items: report.NotReceived},
			{class: "duplicates", title: "admin.duplicates", items: report.Duplicates},
		}
		for _, section := range sections {
			h.element("h2", "", T(loc, section.title))
			h.list(section.class, section.items, none)
		}
		return h.err
	})
}
