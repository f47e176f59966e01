package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/intercambio/internal/platform/i18n"
	"github.com/louisbranch/intercambio/internal/services/exchange/web/templates"
	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "intercambio_lang"
)

// resolveTag picks the request language. The bool reports whether the
// choice came from the query string and should be remembered in a cookie.
func resolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

func setLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func languageOptions(path string, active language.Tag, loc templates.Localizer) []templates.LanguageOption {
	supported := platformi18n.SupportedTags()
	options := make([]templates.LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, templates.LanguageOption{
			Tag:    tag.String(),
			Label:  templates.T(loc, languageKey(tag)),
			URL:    languageURL(path, tag),
			Active: tag == active,
		})
	}
	return options
}

func languageKey(tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "en" {
		return "nav.lang_en"
	}
	return "nav.lang_es"
}

func languageURL(path string, tag language.Tag) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	query := url.Values{}
	query.Set(LangParam, tag.String())
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
