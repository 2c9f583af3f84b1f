// Package vectordb stores contract documents for embedding-based
// semantic search. Two backends implement the same small interface: a
// chromem-go store and a plain in-memory store; the caller picks one at
// construction time.
package vectordb

import "strings"

// Document is a piece of contract content to store and search.
type Document struct {
	ID       string
	Content  string
	Metadata ContractMetadata
}

// ContractMetadata is the filterable subset of a contract's extracted
// fields. Values are flat strings so every backend can filter on them.
type ContractMetadata struct {
	FileName       string
	ContractID     string
	ContractType   string
	Companies      []string
	ExpirationDate string
}

// Result pairs a document with its similarity to the query.
type Result struct {
	Document   Document
	Similarity float32
}

// Filter narrows a query by metadata fields. Nil fields match anything.
type Filter struct {
	ContractType *string
	FileName     *string
}

func metadataToMap(m ContractMetadata) map[string]string {
	return map[string]string{
		"file_name":       m.FileName,
		"contract_id":     m.ContractID,
		"contract_type":   m.ContractType,
		"companies":       strings.Join(m.Companies, "; "),
		"expiration_date": m.ExpirationDate,
	}
}

func mapToMetadata(m map[string]string) ContractMetadata {
	var companies []string
	if m["companies"] != "" {
		companies = strings.Split(m["companies"], "; ")
	}
	return ContractMetadata{
		FileName:       m["file_name"],
		ContractID:     m["contract_id"],
		ContractType:   m["contract_type"],
		Companies:      companies,
		ExpirationDate: m["expiration_date"],
	}
}

func filterToWhere(f *Filter) map[string]string {
	if f == nil {
		return nil
	}
	where := map[string]string{}
	if f.ContractType != nil {
		where["contract_type"] = *f.ContractType
	}
	if f.FileName != nil {
		where["file_name"] = *f.FileName
	}
	if len(where) == 0 {
		return nil
	}
	return where
}
