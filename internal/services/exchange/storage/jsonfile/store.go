// Package jsonfile stores exchange state as a single UTF-8 JSON document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage"
)

// Store reads and writes the state file at a fixed path.
type Store struct {
	path string
}

// New returns a Store for path. The file is created on first Save.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing file is reported as not found.
func (s *Store) Load(ctx context.Context) (domain.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, false, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Document{}, false, nil
		}
		return domain.Document{}, false, fmt.Errorf("read state file: %w", err)
	}

	doc, err := decode(data)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	return doc, true, nil
}

// Save replaces the state file with doc. The content is written to a
// temporary file in the same directory and renamed over the old one.
func (s *Store) Save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// fileDocument is the on-disk shape. Files written before the keys were
// renamed use participantes and asignaciones; they are read as is and
// rewritten with the current keys on the next save.
type fileDocument struct {
	Participants       *[]string         `json:"participants"`
	Assignments        map[string]string `json:"assignments"`
	LegacyParticipants *[]string         `json:"participantes"`
	LegacyAssignments  map[string]string `json:"asignaciones"`
}

// errMissingParticipants reports a state file without a participant list.
var errMissingParticipants = errors.New("participants field is missing")

func decode(data []byte) (domain.Document, error) {
	var raw fileDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Document{}, err
	}

	participants, assignments := raw.Participants, raw.Assignments
	if participants == nil && raw.LegacyParticipants != nil {
		participants, assignments = raw.LegacyParticipants, raw.LegacyAssignments
	}
	if participants == nil {
		return domain.Document{}, errMissingParticipants
	}

	doc := domain.Document{
		Participants: append([]string{}, (*participants)...),
		Assignments:  assignments,
	}
	if doc.Assignments == nil {
		doc.Assignments = map[string]string{}
	}
	return doc, nil
}

// encode renders doc with two-space indentation, keeping non-ASCII and HTML
// characters literal.
func encode(doc domain.Document) ([]byte, error) {
	if doc.Participants == nil {
		doc.Participants = []string{}
	}
	if doc.Assignments == nil {
		doc.Assignments = map[string]string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ storage.Store = (*Store)(nil)
