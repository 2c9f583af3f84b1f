package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

// heuristicAnswerer builds answers by scanning the retrieved documents
// for lines relevant to the question's topic. Deterministic and fully
// local; the fallback when no LLM provider is configured.
type heuristicAnswerer struct{}

func (a *heuristicAnswerer) Answer(ctx context.Context, question string, docs []corpus.Document) (string, string, error) {
	q := strings.ToLower(question)

	var text string
	switch {
	case strings.Contains(q, "expir") || strings.Contains(q, "terminat"):
		text = answerByKeyword(docs, "expiration-related information", "expir", "terminat", "end date")
	case strings.Contains(q, "address"):
		text = answerByKeyword(docs, "addresses", "address")
	case strings.Contains(q, "company") || strings.Contains(q, "parties") || strings.Contains(q, "party"):
		text = answerCompanies(docs)
	case strings.Contains(q, "amount") || strings.Contains(q, "price") || strings.Contains(q, "cost") || strings.Contains(q, "payment"):
		text = answerByKeyword(docs, "financial details", "$", "payment", "fee")
	default:
		text = answerGeneral(docs)
	}

	return text, "heuristic", nil
}

// answerByKeyword lists, per document, the lines containing any of the
// given keywords.
func answerByKeyword(docs []corpus.Document, topic string, keywords ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the contract documents, here is the %s:\n\n", topic)

	found := false
	for _, doc := range docs {
		var lines []string
		for _, line := range strings.Split(doc.RawText, "\n") {
			lower := strings.ToLower(line)
			for _, kw := range keywords {
				if strings.Contains(lower, strings.ToLower(kw)) {
					lines = append(lines, strings.TrimSpace(line))
					break
				}
			}
		}
		if len(lines) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(&b, "%s:\n", doc.FileName())
		for _, line := range lines {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}

	if !found {
		return fmt.Sprintf("The retrieved documents do not contain %s.", topic)
	}
	return b.String()
}

func answerCompanies(docs []corpus.Document) string {
	companies := map[string]bool{}
	for _, doc := range docs {
		for _, c := range doc.Metadata.Strings(extract.KeyCompanies) {
			companies[c] = true
		}
	}
	if len(companies) == 0 {
		return "The retrieved documents do not name any companies."
	}

	names := make([]string, 0, len(companies))
	for c := range companies {
		names = append(names, c)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("The contract documents mention these companies:\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	return b.String()
}

func answerGeneral(docs []corpus.Document) string {
	var b strings.Builder
	b.WriteString("Here is what the most relevant contract documents contain:\n\n")
	for _, doc := range docs {
		excerpt := strings.TrimSpace(doc.RawText)
		if len(excerpt) > 300 {
			excerpt = excerpt[:300] + "..."
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", doc.FileName(), excerpt)
	}
	return b.String()
}
