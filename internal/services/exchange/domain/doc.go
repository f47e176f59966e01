// Package domain holds the gift-exchange rules: the canonical roster, the
// persisted state document, reconciliation against the roster, partner
// resolution and the derived diagnostic report.
//
// Everything here is pure; persistence and locking live in the service
// package.
package domain
