package domain

import (
	"strings"

	apperrors "github.com/louisbranch/intercambio/internal/platform/errors"
)

// DefaultRoster is the family list used when no override is configured.
var DefaultRoster = Roster{
	"Miguel", "Mamá", "Papá Luis", "Abuelita Maria", "Luis Consentido",
	"Daniela", "Efrain", "Karla", "Mariana",
	"Sandra", "Alejandro", "Brenda",
}

// Roster is the canonical ordered participant list.
type Roster []string

// NewRoster validates names and returns them as a Roster. Names are trimmed;
// the list must be non-empty with no blank or repeated names.
func NewRoster(names []string) (Roster, error) {
	if len(names) == 0 {
		return nil, apperrors.New(apperrors.CodeRosterInvalid, "roster is empty")
	}
	seen := make(map[string]struct{}, len(names))
	out := make(Roster, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperrors.New(apperrors.CodeRosterInvalid, "roster contains a blank name")
		}
		if _, ok := seen[name]; ok {
			return nil, apperrors.WithMetadata(apperrors.CodeRosterInvalid, "roster repeats "+name, map[string]string{"Name": name})
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}

// Equal reports whether names matches the roster exactly, order included.
func (r Roster) Equal(names []string) bool {
	if len(r) != len(names) {
		return false
	}
	for i := range r {
		if r[i] != names[i] {
			return false
		}
	}
	return true
}

// Names returns a copy of the roster names.
func (r Roster) Names() []string {
	out := make([]string, len(r))
	copy(out, r)
	return out
}
