// Package notify fans lead changes out to the agency: an email to the admin
// inbox and events on a RabbitMQ exchange. Both are optional and best-effort.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/leadhub/server/internal/model"
	"gopkg.in/gomail.v2"
)

var newLeadTemplate = template.Must(template.New("new_lead").Parse(`<h2>New lead: {{.Name}}</h2>
<table>
<tr><td>Email</td><td>{{.Email}}</td></tr>
<tr><td>Phone</td><td>{{.Phone}}</td></tr>
<tr><td>Project</td><td>{{.ProjectType}}</td></tr>
<tr><td>Budget</td><td>{{.BudgetRange}}</td></tr>
</table>
<p>{{.Message}}</p>
<p><small>Lead ID {{.ID}}, received {{.CreatedAt.Format "2006-01-02 15:04 MST"}}</small></p>
`))

// Dialer sends composed messages; *gomail.Dialer satisfies it
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer emails the admin whenever a lead is submitted
type Mailer struct {
	dialer Dialer
	from   string
	to     string
}

// NewMailer creates a mailer backed by an SMTP dialer
func NewMailer(host string, port int, user, password, from, to string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		to:     to,
	}
}

// LeadSubmitted sends the new-lead email. Replies go straight to the prospect.
func (m *Mailer) LeadSubmitted(_ context.Context, lead model.Lead) error {
	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, lead); err != nil {
		return fmt.Errorf("render new lead email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", lead.Email)
	msg.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.ProjectType))
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send new lead email: %w", err)
	}
	return nil
}

// StatusChanged is a no-op; the admin made the change themselves.
func (m *Mailer) StatusChanged(context.Context, model.Lead) error {
	return nil
}
