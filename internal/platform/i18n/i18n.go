// Package i18n resolves request languages against the supported catalogs.
package i18n

import (
	"strings"

	"github.com/louisbranch/intercambio/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supportedTags = []language.Tag{
		language.MustParse("es-MX"),
		language.MustParse("en-US"),
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and matches it to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supportedTags[index], true
}

// MatchTags picks the best supported tag for the preferred list.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag()
	}
	_, index, _ := matcher.Match(preferred...)
	return supportedTags[index]
}

// Printer returns a message printer for tag backed by the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	_ = catalog.Default()
	return message.NewPrinter(tag)
}
