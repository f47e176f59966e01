package server

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage/jsonfile"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage/sqlite"
)

// Storage backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// DefaultDataPath returns the data path used when none is configured.
func DefaultDataPath(kind string) string {
	if normalizeStoreKind(kind) == StoreSQLite {
		return filepath.Join("data", "intercambio.db")
	}
	return "estado_intercambio.json"
}

// OpenStore opens the configured backend. The returned close function is
// never nil.
func OpenStore(kind, path string) (storage.Store, func() error, error) {
	kind = normalizeStoreKind(kind)
	if strings.TrimSpace(path) == "" {
		path = DefaultDataPath(kind)
	}
	switch kind {
	case StoreJSON:
		store, err := jsonfile.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open json store: %w", err)
		}
		return store, func() error { return nil }, nil
	case StoreSQLite:
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}
}

// RosterFromNames returns the default family roster when names is empty.
func RosterFromNames(names []string) (domain.Roster, error) {
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	if len(trimmed) == 0 {
		return domain.Roster(domain.DefaultRoster.Names()), nil
	}
	return domain.NewRoster(trimmed)
}

func normalizeStoreKind(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return StoreJSON
	}
	return kind
}
