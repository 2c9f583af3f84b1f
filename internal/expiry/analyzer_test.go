package expiry

import (
	"fmt"
	"testing"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func docWithMetadata(id string, md extract.Metadata) corpus.Document {
	if md == nil {
		md = extract.Metadata{}
	}
	md[extract.KeyFileName] = id + ".txt"
	return corpus.Document{ID: id, Metadata: md}
}

func docExpiringIn(id string, days int) corpus.Document {
	date := testNow.AddDate(0, 0, days).Format("2006-01-02")
	return docWithMetadata(id, extract.Metadata{extract.KeyExpirationDate: date})
}

func TestUrgencyTiers(t *testing.T) {
	tests := []struct {
		days int
		want Urgency
	}{
		{-30, UrgencyCritical},
		{0, UrgencyCritical},
		{7, UrgencyCritical},
		{8, UrgencyHigh},
		{14, UrgencyHigh},
		{15, UrgencyMedium},
		{30, UrgencyMedium},
		{31, UrgencyLow},
		{365, UrgencyLow},
	}
	for _, tt := range tests {
		if got := UrgencyFor(tt.days); got != tt.want {
			t.Errorf("UrgencyFor(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestUrgencyTotal(t *testing.T) {
	for d := -400; d <= 400; d++ {
		switch UrgencyFor(d) {
		case UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow:
		default:
			t.Fatalf("UrgencyFor(%d) returned no tier", d)
		}
	}
}

func TestExpirationDateMetadataWins(t *testing.T) {
	doc := corpus.Document{
		ID:      "d1",
		RawText: "This contract expires on March 1, 2030\n",
		Metadata: extract.Metadata{
			extract.KeyExpirationDate: "January 15, 2026",
		},
	}
	date, ok := ExpirationDate(doc)
	if !ok {
		t.Fatal("no date resolved")
	}
	if got := date.Format("2006-01-02"); got != "2026-01-15" {
		t.Errorf("resolved %s, want metadata date 2026-01-15", got)
	}
}

func TestExpirationDateContentFallback(t *testing.T) {
	// Trailing prose after the date must not spill into the capture.
	tests := []struct {
		name string
		text string
		want string
	}{
		{"long form with trailing prose", "Agreement terminates on June 30, 2026 unless renewed.\n", "2026-06-30"},
		{"iso form with trailing prose", "This license expires on 2026-03-01 at midnight.\n", "2026-03-01"},
		{"expiration date label", "Expiration Date: January 15, 2027\n", "2027-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := corpus.Document{
				ID:      "d1",
				RawText: tt.text,
				Metadata: extract.Metadata{
					extract.KeyExpirationDate: "not a date",
				},
			}
			date, ok := ExpirationDate(doc)
			if !ok {
				t.Fatal("content fallback did not resolve a date")
			}
			if got := date.Format("2006-01-02"); got != tt.want {
				t.Errorf("resolved %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExpirationDateAbsent(t *testing.T) {
	doc := corpus.Document{ID: "d1", RawText: "no dates here", Metadata: extract.Metadata{}}
	if _, ok := ExpirationDate(doc); ok {
		t.Error("resolved a date from dateless document")
	}
}

func TestFindExpiringWindowAndOrder(t *testing.T) {
	docs := []corpus.Document{
		docExpiringIn("far", 90),
		docExpiringIn("soon", 5),
		docExpiringIn("later", 20),
		docExpiringIn("expired", -3),
		docWithMetadata("dateless", nil),
	}

	records := FindExpiring(docs, 30, testNow)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	wantOrder := []string{"expired", "soon", "later"}
	for i, id := range wantOrder {
		if records[i].DocumentID != id {
			t.Errorf("position %d = %s, want %s", i, records[i].DocumentID, id)
		}
	}

	if records[0].DaysUntilExpiry != -3 {
		t.Errorf("expired contract days = %d, want -3", records[0].DaysUntilExpiry)
	}
	if records[1].DaysUntilExpiry != 5 || records[1].Urgency != UrgencyCritical {
		t.Errorf("soon: days=%d urgency=%s, want 5 CRITICAL", records[1].DaysUntilExpiry, records[1].Urgency)
	}
	if records[2].Urgency != UrgencyMedium {
		t.Errorf("later urgency = %s, want MEDIUM", records[2].Urgency)
	}
}

func TestFindExpiringTiesKeepCorpusOrder(t *testing.T) {
	docs := []corpus.Document{
		docExpiringIn("b", 10),
		docExpiringIn("a", 10),
	}
	records := FindExpiring(docs, 30, testNow)
	if len(records) != 2 || records[0].DocumentID != "b" || records[1].DocumentID != "a" {
		t.Errorf("tie order = %v", records)
	}
}

func TestFindExpiringEmptyCorpus(t *testing.T) {
	if got := FindExpiring(nil, 30, testNow); len(got) != 0 {
		t.Errorf("empty corpus yielded %d records", len(got))
	}
}

func TestFindExpiringDefaultWindow(t *testing.T) {
	docs := []corpus.Document{docExpiringIn("d", 25)}
	records := FindExpiring(docs, 0, testNow)
	if len(records) != 1 {
		t.Fatalf("default window missed a 25-day contract (%d records)", len(records))
	}
}

func TestFindExpiringAllUrgencyBoundaries(t *testing.T) {
	var docs []corpus.Document
	for _, d := range []int{7, 14, 30} {
		docs = append(docs, docExpiringIn(fmt.Sprintf("d%d", d), d))
	}
	records := FindExpiring(docs, 30, testNow)
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	want := []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium}
	for i, r := range records {
		if r.Urgency != want[i] {
			t.Errorf("boundary %d days → %s, want %s", r.DaysUntilExpiry, r.Urgency, want[i])
		}
	}
}
