// Package notify emails a short summary of each extracted letter.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
)

type emailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// sender is the part of the Resend client the notifier uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Notifier sends one email per extracted letter. A Notifier built without an
// API key or recipients is disabled and every call is a no-op.
type Notifier struct {
	emails  sender
	from    string
	to      []string
	logger  *slog.Logger
	metrics *emailMetrics
	tmpl    *template.Template
}

func New(cfg common.NotifyConfig, reg prometheus.Registerer, logger *slog.Logger) *Notifier {
	var emails sender
	if cfg.ResendAPIKey != "" {
		emails = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return newNotifier(emails, cfg, reg, logger)
}

func newNotifier(emails sender, cfg common.NotifyConfig, reg prometheus.Registerer, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &emailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "letters_email_send_duration_seconds",
			Help:    "Time taken to send letter notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letters_email_errors_total",
			Help: "Total number of notification emails that failed",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letters_emails_sent_total",
			Help: "Total number of notification emails sent",
		}),
	}
	reg.MustRegister(m.sendLatency, m.errorCount, m.sentCount)

	n := &Notifier{
		emails:  emails,
		from:    cfg.From,
		to:      cfg.To,
		logger:  logger,
		metrics: m,
		tmpl:    template.Must(template.New("letter").Parse(letterEmailTemplate)),
	}
	if !n.Enabled() {
		logger.Info("email notifications disabled")
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.emails != nil && n.from != "" && len(n.to) > 0
}

type letterEmail struct {
	Record rules.StructuredRecord
	File   string
	FileID string
	JobID  string
}

// LetterExtracted emails the summary of rec.
func (n *Notifier) LetterExtracted(ctx context.Context, file *entity.LetterFile, jobID uuid.UUID, rec rules.StructuredRecord) error {
	if !n.Enabled() {
		return nil
	}
	start := time.Now()
	defer func() { n.metrics.sendLatency.Observe(time.Since(start).Seconds()) }()

	data := letterEmail{Record: rec, JobID: jobID.String()}
	if file != nil {
		data.File = filepath.Base(file.SourcePath)
		data.FileID = file.ID.String()
	}
	var body bytes.Buffer
	if err := n.tmpl.Execute(&body, data); err != nil {
		n.metrics.errorCount.Inc()
		return fmt.Errorf("render email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: Subject(rec),
		Html:    body.String(),
	}
	if _, err := n.emails.SendWithContext(ctx, params); err != nil {
		n.metrics.errorCount.Inc()
		n.logger.Error("failed to send email", "job_id", jobID, "err", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	n.metrics.sentCount.Inc()
	n.logger.Info("email sent", "job_id", jobID, "to", len(n.to))
	return nil
}

// Subject is the email subject line for a letter.
func Subject(rec rules.StructuredRecord) string {
	s := "नवीन पत्र: " + rec.LetterType
	if rec.LetterDate != "" {
		s += " (" + rec.LetterDate + ")"
	}
	return s
}

const letterEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>नवीन पत्र</title></head>
<body style="font-family: sans-serif; color: #333333;">
<h2>{{.Record.LetterType}}</h2>
<table cellpadding="4">
<tr><td><b>विषय</b></td><td>{{.Record.LetterSubject}}</td></tr>
<tr><td><b>दिनांक</b></td><td>{{.Record.LetterDate}}</td></tr>
<tr><td><b>कार्यालय</b></td><td>{{.Record.ReceivedByOffice}}</td></tr>
{{if .Record.OfficeName}}<tr><td><b>जिल्हा</b></td><td>{{.Record.OfficeName}} ({{.Record.OfficeType}})</td></tr>{{end}}
<tr><td><b>कार्यवाही</b></td><td>{{.Record.ActionType}}</td></tr>
{{if .Record.MobileNumber}}<tr><td><b>मोबाईल</b></td><td>{{.Record.MobileNumber}}</td></tr>{{end}}
</table>
<p>{{.Record.Remarks}}</p>
{{if .File}}<p style="color: #888888;">{{.File}} · {{.FileID}} · job {{.JobID}}</p>{{end}}
</body>
</html>
`
