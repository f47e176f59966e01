// Package sqlite provides SQLite-backed exchange state storage.
//
// The document is split across a marker row, the ordered participant list
// and the assignment rows. Save rewrites all three in one transaction so
// readers never observe a half-written document.
package sqlite
