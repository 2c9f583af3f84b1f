package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text for CLI
// and MCP tool output.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&sb, "--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity)

		md := r.Document.Metadata
		if md.FileName != "" {
			fmt.Fprintf(&sb, "File: %s\n", md.FileName)
		}
		if md.ContractID != "" {
			fmt.Fprintf(&sb, "Contract: %s\n", md.ContractID)
		}
		if md.ContractType != "" {
			fmt.Fprintf(&sb, "Type: %s\n", md.ContractType)
		}
		if len(md.Companies) > 0 {
			fmt.Fprintf(&sb, "Companies: %s\n", strings.Join(md.Companies, ", "))
		}
		if md.ExpirationDate != "" {
			fmt.Fprintf(&sb, "Expires: %s\n", md.ExpirationDate)
		}

		sb.WriteString("\n")
		content := r.Document.Content
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
