package vectordb

import "context"

// Store is the capability set the rest of the system needs from a
// vector store: add documents, query by text, count.
type Store interface {
	// AddDocuments adds or replaces documents in the store.
	AddDocuments(ctx context.Context, docs []Document) error

	// Query performs a semantic search with the query text.
	Query(ctx context.Context, query string, limit int, filter *Filter) ([]Result, error)

	// Count returns the number of stored documents.
	Count() int
}
