package domain

import (
	"strings"

	apperrors "github.com/louisbranch/intercambio/internal/platform/errors"
)

// Repair records giver → receiver by hand. It is meant for operators fixing
// data after the fact, never for normal draws.
//
// Both names must be on the roster and distinct, and giver must not already
// have a receiver. A receiver already used by someone else is rejected
// unless force is set; forcing creates a duplicate that BuildReport will
// surface.
func Repair(doc *Document, roster Roster, giver, receiver string, force bool) error {
	giver = strings.TrimSpace(giver)
	receiver = strings.TrimSpace(receiver)
	if giver == "" || !roster.Contains(giver) {
		return apperrors.WithMetadata(apperrors.CodeGiverInvalid, "giver is not on the roster", map[string]string{"Giver": giver})
	}
	if receiver == "" || !roster.Contains(receiver) {
		return apperrors.WithMetadata(apperrors.CodeReceiverInvalid, "receiver is not on the roster", map[string]string{"Receiver": receiver})
	}
	if giver == receiver {
		return apperrors.WithMetadata(apperrors.CodeSelfAssignment, "giver and receiver are the same", map[string]string{"Giver": giver})
	}
	if existing, ok := doc.Assignments[giver]; ok {
		return apperrors.WithMetadata(apperrors.CodeAlreadyAssigned, "giver already assigned", map[string]string{"Giver": giver, "Receiver": existing})
	}
	if !force {
		for other, taken := range doc.Assignments {
			if taken == receiver {
				return apperrors.WithMetadata(apperrors.CodeReceiverTaken, "receiver already assigned", map[string]string{"Giver": other, "Receiver": receiver})
			}
		}
	}
	if doc.Assignments == nil {
		doc.Assignments = map[string]string{}
	}
	doc.Assignments[giver] = receiver
	return nil
}
