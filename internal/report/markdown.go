package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a markdown document. The notify package
// converts this to HTML for email delivery; it also reads well as-is in
// a terminal or a ticket.
func Markdown(r DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Contract Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Date.Format("January 2, 2006 15:04 MST"))

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- Expiring contracts: %d\n", r.Summary.TotalExpiringContracts)
	fmt.Fprintf(&b, "- Conflicts detected: %d\n", r.Summary.TotalConflicts)
	attention := "No"
	if r.Summary.RequiresImmediateAttention {
		attention = "Yes"
	}
	fmt.Fprintf(&b, "- Requires immediate attention: %s\n\n", attention)

	if len(r.ExpiringContracts) > 0 {
		fmt.Fprintf(&b, "## Expiring Contracts\n\n")
		fmt.Fprintf(&b, "| Contract | Type | File | Expires | Days Left | Urgency |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")
		for _, c := range r.ExpiringContracts {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
				orDash(c.ContractID), orDash(c.ContractType), orDash(c.FileName),
				c.ExpirationDate, c.DaysUntilExpiry, c.Urgency)
		}
		b.WriteString("\n")
	}

	if len(r.Conflicts) > 0 {
		fmt.Fprintf(&b, "## Conflicts\n\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&b, "### %s (%s)\n\n%s\n\n", c.Entity, c.Severity, c.Description)
			for _, o := range c.Observations {
				fmt.Fprintf(&b, "- %s: %s\n", o.Document, o.Value)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "## Recommendations\n\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
