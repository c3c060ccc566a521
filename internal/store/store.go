// Package store provides a generic document store used to persist user
// favorite-stock records. The HTTP surface only depends on the DocumentStore
// interface, so the backing engine can be swapped without touching handlers.
package store

import (
	"context"

	"github.com/moznion/go-optional"
)

// Document is a schemaless record. Callers may store arbitrary fields; the
// store owns the generated identifier and exposes it as the "id" field on
// query results.
type Document = map[string]any

// Filter is a single equality predicate on a top-level document field.
type Filter struct {
	Field string
	Value string
}

// Diagnostics describes document-store reachability for the /test endpoint.
type Diagnostics struct {
	// Backend is always "running" when this struct is produced.
	Backend string `json:"backend"`
	// Database describes the state of the backing database.
	Database string `json:"database"`
	// ConnectionStatus is "Connected" or "Not Connected".
	ConnectionStatus string `json:"connection_status"`
	// DatabasePath is the configured database location.
	DatabasePath string `json:"database_path"`
	// Collections lists up to ten known collections.
	Collections []string `json:"collections"`
}

// DocumentStore persists and queries schemaless documents grouped into
// collections. Implementations must be safe for concurrent use.
type DocumentStore interface {
	// Create stores a document in the collection and returns its generated id.
	Create(ctx context.Context, collection string, doc Document) (string, error)
	// Query returns up to limit documents from the collection, optionally
	// restricted by an equality filter, in insertion order. Each returned
	// document carries its identifier in the "id" field as a string.
	Query(ctx context.Context, collection string, filter optional.Option[Filter], limit int) ([]Document, error)
	// Diagnostics reports reachability information about the store.
	Diagnostics(ctx context.Context) Diagnostics
	// Close releases the underlying database handle.
	Close() error
}
