// Package corpus owns the document model for one processing run: loading
// contract files from disk, extracting metadata, and tracking documents in
// an explicit registry owned by the caller.
package corpus

import (
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

// Document is a single contract document. Immutable once indexed; a rebuild
// replaces the whole corpus rather than patching documents in place.
type Document struct {
	ID             string
	RawText        string
	NormalizedText string
	Metadata       extract.Metadata
}

// FileName returns the document's source file name, or "" when unknown.
func (d Document) FileName() string {
	return d.Metadata.String(extract.KeyFileName)
}

// Registry holds the documents of one processing run in corpus order.
// It is an explicit value owned by the caller; there is no process-wide
// document state.
type Registry struct {
	docs []Document
	byID map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Add appends a document. A document with a duplicate ID replaces the
// earlier entry in place, keeping corpus order stable.
func (r *Registry) Add(doc Document) {
	if i, ok := r.byID[doc.ID]; ok {
		r.docs[i] = doc
		return
	}
	r.byID[doc.ID] = len(r.docs)
	r.docs = append(r.docs, doc)
}

// Get returns the document with the given ID.
func (r *Registry) Get(id string) (Document, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Document{}, false
	}
	return r.docs[i], true
}

// All returns every document in corpus order. The returned slice is shared;
// callers must not mutate it.
func (r *Registry) All() []Document {
	return r.docs
}

// Len returns the number of documents.
func (r *Registry) Len() int {
	return len(r.docs)
}
