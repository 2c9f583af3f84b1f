// Package notify delivers daily reports by email. The report body is
// rendered from markdown to HTML so recipients get readable tables.
package notify

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/zeyadtarek/clm-sentinel/internal/report"
)

// Config holds SMTP delivery settings. Empty Host or Recipient disables
// delivery entirely.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// Mailer renders and sends report emails over SMTP with STARTTLS.
type Mailer struct {
	cfg Config
	md  goldmark.Markdown
}

// NewMailer builds a mailer for the given settings.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Enabled reports whether delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.Recipient != ""
}

// Subject returns the subject line for a report email.
func Subject(r report.DailyReport) string {
	prefix := "Daily Contract Report"
	if r.Summary.RequiresImmediateAttention {
		prefix = "[ACTION REQUIRED] " + prefix
	}
	return fmt.Sprintf("%s - %s", prefix, r.Date.Format("January 2, 2006"))
}

// RenderHTML converts the report to a complete HTML email body.
func (m *Mailer) RenderHTML(r report.DailyReport) (string, error) {
	var body bytes.Buffer
	if err := m.md.Convert([]byte(report.Markdown(r)), &body); err != nil {
		return "", fmt.Errorf("rendering report HTML: %w", err)
	}

	var page strings.Builder
	page.WriteString("<html><head><style>")
	page.WriteString("body{font-family:Arial,sans-serif;margin:20px;}")
	page.WriteString("table{border-collapse:collapse;}")
	page.WriteString("th,td{border:1px solid #ddd;padding:6px 10px;text-align:left;}")
	page.WriteString("th{background-color:#f4f4f4;}")
	page.WriteString("</style></head><body>")
	page.WriteString(body.String())
	page.WriteString("</body></html>")
	return page.String(), nil
}

// Send delivers the report to the configured recipient. Calling Send on
// a disabled mailer is an error; callers should check Enabled first.
func (m *Mailer) Send(r report.DailyReport) error {
	if !m.Enabled() {
		return fmt.Errorf("email delivery is not configured")
	}

	htmlBody, err := m.RenderHTML(r)
	if err != nil {
		return err
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.cfg.Recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", Subject(r))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, from, []string{m.cfg.Recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}
	return nil
}
