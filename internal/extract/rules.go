package extract

import "regexp"

// Metadata keys form a fixed vocabulary. Absent keys mean "not found";
// a key is never present with a null or sentinel value.
const (
	KeyContractID     = "contract_id"
	KeyContractType   = "contract_type"
	KeyCompanies      = "companies"
	KeyEffectiveDate  = "effective_date"
	KeyExpirationDate = "expiration_date"
	KeyStartDate      = "start_date"
	KeyEndDate        = "end_date"
	KeyMonetaryValues = "monetary_values"
	KeyAddresses      = "addresses"
	KeyContact        = "contact"
	KeyEmail          = "email"
	KeyPhone          = "phone"

	// Filled in by the corpus loader, not by content extraction.
	KeyFileName  = "file_name"
	KeyFilePath  = "file_path"
	KeyFileType  = "file_type"
	KeyDirectory = "directory"
	KeyFileSize  = "file_size"
	KeyModified  = "last_modified"
	KeyDocID     = "doc_id"
)

// Mode controls how matches of a rule accumulate into the metadata record.
type Mode int

const (
	// First keeps only the first match as a single string value.
	First Mode = iota
	// Collect appends the first match to a string-list value.
	Collect
	// All appends every match to a string-list value.
	All
)

// Rule binds a metadata key to a labeled pattern and an accumulation mode.
// Rules are applied in declaration order; for single-valued fields the first
// rule to match wins and later rules for the same key are skipped.
type Rule struct {
	Key     string
	Pattern *regexp.Regexp
	Mode    Mode
}

// rules is the ordered extraction table. Patterns are case-insensitive.
var rules = []Rule{
	{KeyContractID, regexp.MustCompile(`(?i)Contract ID:\s*([A-Z0-9-]+)`), First},

	// Date values stay on their own line; the class deliberately excludes
	// newlines so a label is never captured into the preceding value.
	{KeyEffectiveDate, regexp.MustCompile(`(?i)Effective Date:[ \t]*([A-Za-z0-9 ,-]+)`), First},
	{KeyExpirationDate, regexp.MustCompile(`(?i)Expiration Date:[ \t]*([A-Za-z0-9 ,-]+)`), First},
	{KeyStartDate, regexp.MustCompile(`(?i)Start Date:[ \t]*([A-Za-z0-9 ,-]+)`), First},
	{KeyEndDate, regexp.MustCompile(`(?i)End Date:[ \t]*([A-Za-z0-9 ,-]+)`), First},

	{KeyCompanies, regexp.MustCompile(`(?i)Client:\s*([^\n]+)`), Collect},
	{KeyCompanies, regexp.MustCompile(`(?i)Company:\s*([^\n]+)`), Collect},
	{KeyCompanies, regexp.MustCompile(`(?i)Vendor:\s*([^\n]+)`), Collect},
	{KeyCompanies, regexp.MustCompile(`(?i)Service Provider:\s*([^\n]+)`), Collect},

	{KeyAddresses, regexp.MustCompile(`(?i)Address:\s*([^\n]+)`), All},
	{KeyAddresses, regexp.MustCompile(`(?i)Business Address:\s*([^\n]+)`), All},
	{KeyAddresses, regexp.MustCompile(`(?i)Office Address:\s*([^\n]+)`), All},

	{KeyContact, regexp.MustCompile(`(?i)Contact:\s*([^\n]+)`), First},
	{KeyEmail, regexp.MustCompile(`(?i)Email:\s*([^\n]+)`), First},
	{KeyPhone, regexp.MustCompile(`(?i)Phone:\s*([^\n]+)`), First},

	{KeyMonetaryValues, regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`), All},
}

// contractTypes is checked in order; the first keyword found in the document
// decides the contract type.
var contractTypes = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"Service Agreement", regexp.MustCompile(`(?i)Service Agreement`)},
	{"Software License", regexp.MustCompile(`(?i)Software License`)},
	{"Consulting Contract", regexp.MustCompile(`(?i)Consulting Contract`)},
	{"Non-Disclosure Agreement", regexp.MustCompile(`(?i)Non-Disclosure Agreement`)},
	{"Employment Contract", regexp.MustCompile(`(?i)Employment Contract`)},
	{"Vendor Agreement", regexp.MustCompile(`(?i)Vendor Agreement`)},
}
