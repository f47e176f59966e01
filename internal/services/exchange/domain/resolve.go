package domain

import (
	"strings"

	apperrors "github.com/louisbranch/intercambio/internal/platform/errors"
	"github.com/louisbranch/intercambio/internal/random"
)

// Candidates lists, in roster order, everyone giver could still be assigned:
// not already somebody's receiver and not giver themselves.
func Candidates(doc Document, roster Roster, giver string) []string {
	taken := doc.Receivers()
	candidates := make([]string, 0, len(roster))
	for _, name := range roster {
		if name == giver {
			continue
		}
		if _, ok := taken[name]; ok {
			continue
		}
		candidates = append(candidates, name)
	}
	return candidates
}

// Resolve returns giver's receiver. An existing assignment is returned as is;
// otherwise one candidate is drawn uniformly from src and recorded in doc.
// created reports whether doc was mutated.
func Resolve(doc *Document, roster Roster, giver string, src random.Source) (receiver string, created bool, err error) {
	giver = strings.TrimSpace(giver)
	if giver == "" {
		return "", false, apperrors.New(apperrors.CodeGiverInvalid, "giver is required")
	}
	if !roster.Contains(giver) {
		return "", false, apperrors.WithMetadata(apperrors.CodeGiverInvalid, "giver is not on the roster", map[string]string{"Giver": giver})
	}
	if existing, ok := doc.Assignments[giver]; ok {
		return existing, false, nil
	}

	candidates := Candidates(*doc, roster, giver)
	if len(candidates) == 0 {
		return "", false, apperrors.WithMetadata(apperrors.CodeNoCandidates, "no receivers left", map[string]string{"Giver": giver})
	}

	receiver = candidates[src.Intn(len(candidates))]
	if doc.Assignments == nil {
		doc.Assignments = map[string]string{}
	}
	doc.Assignments[giver] = receiver
	return receiver, true, nil
}
