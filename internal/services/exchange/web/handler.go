package web

import (
	"context"
	"log"
	"net/http"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/intercambio/internal/platform/errors"
	platformi18n "github.com/louisbranch/intercambio/internal/platform/i18n"
	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
	"github.com/louisbranch/intercambio/internal/services/exchange/service"
	"github.com/louisbranch/intercambio/internal/services/exchange/web/templates"
	"golang.org/x/text/message"
)

// FormField is the form field carrying the selected giver name.
const FormField = "nombre"

// Exchange is the subset of the exchange service the pages use.
type Exchange interface {
	Roster() domain.Roster
	Resolve(ctx context.Context, giver string) (service.Result, error)
	Report(ctx context.Context) (domain.Report, error)
}

type handler struct {
	exchange Exchange
}

// NewHandler builds the HTTP handler for the exchange pages.
func NewHandler(exchange Exchange) http.Handler {
	h := &handler{exchange: exchange}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /{$}", h.handleSubmit)
	mux.HandleFunc("GET /admin", h.handleAdmin)
	mux.HandleFunc("GET /healthz", handleHealth)
	return mux
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, loc := h.pageContext(w, r, "app.title")
	view := templates.IndexView{Participants: h.exchange.Roster().Names()}
	templ.Handler(templates.IndexPage(page, view, loc)).ServeHTTP(w, r)
}

func (h *handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	page, loc := h.pageContext(w, r, "app.title")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	selected := r.PostForm.Get(FormField)
	view := templates.IndexView{
		Participants: h.exchange.Roster().Names(),
		Selected:     selected,
	}

	status := http.StatusOK
	result, err := h.exchange.Resolve(r.Context(), selected)
	if err != nil {
		code := apperrors.GetCode(err)
		if !code.UserFacing() {
			h.renderFailure(w, r, page, loc, "resolve", err)
			return
		}
		status = code.HTTPStatus()
		view.Error = templates.T(loc, code.MessageKey())
	} else {
		view.Selected = result.Giver
		view.Receiver = result.Receiver
	}
	templ.Handler(templates.IndexPage(page, view, loc), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *handler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	page, loc := h.pageContext(w, r, "admin.title")
	report, err := h.exchange.Report(r.Context())
	if err != nil {
		h.renderFailure(w, r, page, loc, "report", err)
		return
	}
	templ.Handler(templates.AdminPage(page, report, loc)).ServeHTTP(w, r)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) renderFailure(w http.ResponseWriter, r *http.Request, page templates.PageContext, loc *message.Printer, op string, err error) {
	log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, op, err)
	templ.Handler(
		templates.ErrorPage(page, templates.T(loc, "error.internal")),
		templ.WithStatus(apperrors.GetCode(err).HTTPStatus()),
	).ServeHTTP(w, r)
}

func (h *handler) pageContext(w http.ResponseWriter, r *http.Request, titleKey string) (templates.PageContext, *message.Printer) {
	tag, persist := resolveTag(r)
	if persist {
		setLanguageCookie(w, tag)
	}
	loc := platformi18n.Printer(tag)
	return templates.PageContext{
		Lang:      tag.String(),
		Title:     templates.T(loc, titleKey),
		Languages: languageOptions(r.URL.Path, tag, loc),
	}, loc
}
