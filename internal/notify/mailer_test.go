package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func sampleReport(t *testing.T) report.DailyReport {
	t.Helper()
	docs := []corpus.Document{
		{ID: "d1", Metadata: extract.Metadata{
			extract.KeyFileName:       "service.txt",
			extract.KeyContractID:     "SA-1",
			extract.KeyExpirationDate: testNow.AddDate(0, 0, 5).Format("2006-01-02"),
		}},
	}
	return report.Build(docs, expiry.DefaultAlertWindowDays, testNow)
}

func TestEnabled(t *testing.T) {
	if NewMailer(Config{}).Enabled() {
		t.Error("empty config reported enabled")
	}
	if NewMailer(Config{Host: "smtp.example.com"}).Enabled() {
		t.Error("config without recipient reported enabled")
	}
	m := NewMailer(Config{Host: "smtp.example.com", Port: 587, Recipient: "legal@example.com"})
	if !m.Enabled() {
		t.Error("complete config reported disabled")
	}
}

func TestSendDisabledMailer(t *testing.T) {
	if err := NewMailer(Config{}).Send(sampleReport(t)); err == nil {
		t.Error("Send on disabled mailer did not error")
	}
}

func TestSubject(t *testing.T) {
	r := sampleReport(t)
	got := Subject(r)
	if !strings.HasPrefix(got, "[ACTION REQUIRED] Daily Contract Report") {
		t.Errorf("Subject = %q", got)
	}
	if !strings.Contains(got, "June 1, 2025") {
		t.Errorf("Subject = %q", got)
	}

	clean := report.Build(nil, expiry.DefaultAlertWindowDays, testNow)
	if got := Subject(clean); strings.Contains(got, "ACTION REQUIRED") {
		t.Errorf("clean report subject = %q", got)
	}
}

func TestRenderHTML(t *testing.T) {
	m := NewMailer(Config{})
	html, err := m.RenderHTML(sampleReport(t))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{
		"<html>",
		"Daily Contract Report",
		"<table>",
		"SA-1",
		"CRITICAL",
		"URGENT: 1 contracts expire within 7 days",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}
