package conflicts

import (
	"reflect"
	"testing"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

func doc(id string, md extract.Metadata) corpus.Document {
	md[extract.KeyFileName] = id + ".txt"
	return corpus.Document{ID: id, Metadata: md}
}

func TestAddressConflict(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies: []string{"Acme"},
			extract.KeyAddresses: []string{"123 Main St"},
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies: []string{"Acme"},
			extract.KeyAddresses: []string{"456 Main St"},
		}),
	}

	records := Detect(docs)
	if len(records) != 1 {
		t.Fatalf("got %d records, want exactly 1", len(records))
	}

	r := records[0]
	if r.Type != TypeAddress || r.Severity != SeverityHigh || r.Entity != "Acme" {
		t.Errorf("record = %+v", r)
	}
	if len(r.Observations) != 2 {
		t.Fatalf("observations = %d, want 2", len(r.Observations))
	}
	values := map[string]string{}
	for _, o := range r.Observations {
		values[o.Value] = o.DocumentID
	}
	if values["123 Main St"] != "d1" || values["456 Main St"] != "d2" {
		t.Errorf("observations = %+v", r.Observations)
	}
}

func TestNoAddressConflictForConsistentAddress(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies: []string{"Acme"},
			extract.KeyAddresses: []string{"123 Main St"},
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies: []string{"Acme"},
			extract.KeyAddresses: []string{"123 Main St"},
		}),
	}
	if records := Detect(docs); len(records) != 0 {
		t.Errorf("consistent addresses produced %d records", len(records))
	}
}

func TestNoFuzzyCompanyMatching(t *testing.T) {
	// "Acme" and "Acme Corp" are different entities by design.
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies: []string{"Acme"},
			extract.KeyAddresses: []string{"123 Main St"},
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies: []string{"Acme Corp"},
			extract.KeyAddresses: []string{"456 Main St"},
		}),
	}
	if records := Detect(docs); len(records) != 0 {
		t.Errorf("distinct company names produced %d records", len(records))
	}
}

func TestDateConflict(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyContractID:     "SA-1",
			extract.KeyExpirationDate: "January 15, 2026",
		}),
		doc("d2", extract.Metadata{
			extract.KeyContractID:     "SA-1",
			extract.KeyExpirationDate: "2026-03-01",
		}),
	}

	records := Detect(docs)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Type != TypeDate || r.Severity != SeverityHigh || r.Entity != "SA-1" {
		t.Errorf("record = %+v", r)
	}
	if len(r.Observations) != 2 {
		t.Errorf("observations = %+v", r.Observations)
	}
}

func TestDateConflictRequiresContractID(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{extract.KeyExpirationDate: "January 15, 2026"}),
		doc("d2", extract.Metadata{extract.KeyExpirationDate: "2026-03-01"}),
	}
	if records := Detect(docs); len(records) != 0 {
		t.Errorf("documents without contract ids produced %d records", len(records))
	}
}

func TestContactConflict(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies: []string{"Globex"},
			extract.KeyEmail:     "legal@globex.example",
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies: []string{"Globex"},
			extract.KeyEmail:     "sales@globex.example",
		}),
	}

	records := Detect(docs)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Type != TypeContact || records[0].Severity != SeverityMedium {
		t.Errorf("record = %+v", records[0])
	}
}

func TestNoContactConflictForSingleValues(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies: []string{"Globex"},
			extract.KeyEmail:     "legal@globex.example",
			extract.KeyPhone:     "555-1000",
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies: []string{"Globex"},
			extract.KeyEmail:     "legal@globex.example",
			extract.KeyPhone:     "555-1000",
		}),
	}
	if records := Detect(docs); len(records) != 0 {
		t.Errorf("consistent contacts produced %d records", len(records))
	}
}

func TestPhoneOnlyConflict(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies: []string{"Globex"},
			extract.KeyEmail:     "legal@globex.example",
			extract.KeyPhone:     "555-1000",
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies: []string{"Globex"},
			extract.KeyEmail:     "legal@globex.example",
			extract.KeyPhone:     "555-2000",
		}),
	}
	records := Detect(docs)
	if len(records) != 1 || records[0].Type != TypeContact {
		t.Fatalf("records = %+v", records)
	}
}

func TestDetectIdempotentAndDeterministic(t *testing.T) {
	docs := []corpus.Document{
		doc("d1", extract.Metadata{
			extract.KeyCompanies:      []string{"Acme", "Zeta"},
			extract.KeyAddresses:      []string{"1 First Ave"},
			extract.KeyContractID:     "C-1",
			extract.KeyExpirationDate: "2026-01-01",
			extract.KeyEmail:          "a@acme.example",
		}),
		doc("d2", extract.Metadata{
			extract.KeyCompanies:      []string{"Acme", "Zeta"},
			extract.KeyAddresses:      []string{"2 Second Ave"},
			extract.KeyContractID:     "C-1",
			extract.KeyExpirationDate: "2026-06-01",
			extract.KeyEmail:          "b@acme.example",
		}),
	}

	first := Detect(docs)
	second := Detect(docs)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated detection on unchanged corpus differs")
	}

	// Sorted group keys: Acme before Zeta within each pass.
	var addressEntities []string
	for _, r := range first {
		if r.Type == TypeAddress {
			addressEntities = append(addressEntities, r.Entity)
		}
	}
	if !reflect.DeepEqual(addressEntities, []string{"Acme", "Zeta"}) {
		t.Errorf("address conflict order = %v", addressEntities)
	}
}

func TestDetectEmptyCorpus(t *testing.T) {
	if records := Detect(nil); len(records) != 0 {
		t.Errorf("empty corpus produced %d records", len(records))
	}
}
