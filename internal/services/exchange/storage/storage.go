// Package storage defines the persistence contract for exchange state.
//
// A store holds exactly one Document and always replaces it whole; partial
// updates are never issued.
package storage

import (
	"context"

	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
)

// Store persists the exchange state document.
type Store interface {
	// Load returns the persisted document. found is false when nothing has
	// been saved yet.
	Load(ctx context.Context) (doc domain.Document, found bool, err error)
	// Save overwrites the persisted document.
	Save(ctx context.Context, doc domain.Document) error
}
