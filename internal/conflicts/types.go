package conflicts

// Type identifies the kind of disagreement found across documents.
type Type string

const (
	TypeAddress Type = "address_conflict"
	TypeDate    Type = "date_conflict"
	TypeContact Type = "contact_conflict"
)

// Severity grades how serious a conflict is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Observation is one conflicting value together with its source document.
type Observation struct {
	DocumentID string `json:"document_id"`
	Document   string `json:"document"`
	Value      string `json:"value"`
}

// Record is a structured finding that two or more documents disagree on a
// fact about the same entity (a company or a contract id).
type Record struct {
	Type         Type          `json:"type"`
	Severity     Severity      `json:"severity"`
	Entity       string        `json:"entity"`
	Description  string        `json:"description"`
	Observations []Observation `json:"observations"`
}
