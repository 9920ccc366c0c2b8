// Package jobs holds the background task definitions processed by the
// Asynq worker.
package jobs

import (
	"encoding/json"
	"fmt"
	"net/smtp"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDueReminder scans for invoices approaching their due date.
	TaskTypeDueReminder = "invoice:due_reminder"
	// TaskTypeSendEmail delivers one transactional email.
	TaskTypeSendEmail = "mail:send"
)

// DueReminderPayload controls how far ahead the reminder scan looks.
type DueReminderPayload struct {
	WindowHours int `json:"window_hours"`
}

// NewDueReminderTask constructs the scheduled reminder scan task.
func NewDueReminderTask(payload DueReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDueReminder, data), nil
}

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task for one outgoing email.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// Mailer delivers plain-text mail over SMTP. Local development points it at
// Mailpit.
type Mailer struct {
	Addr string
	From string
}

// Send delivers one message. A nil or unconfigured mailer is a no-op so the
// worker can run without an SMTP endpoint.
func (m *Mailer) Send(to, subject, body string) error {
	if m == nil || m.Addr == "" || to == "" {
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("jobs: send mail: %w", err)
	}
	return nil
}
