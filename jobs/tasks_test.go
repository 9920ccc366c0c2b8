package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDueReminderTask(t *testing.T) {
	task, err := NewDueReminderTask(DueReminderPayload{WindowHours: 48})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeDueReminder, task.Type())

	var payload DueReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, 48, payload.WindowHours)
}

func TestNewSendEmailTask(t *testing.T) {
	task, err := NewSendEmailTask(SendEmailPayload{To: "ada@example.com", Subject: "Invoice INV-0001 is due"})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSendEmail, task.Type())

	var payload SendEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "ada@example.com", payload.To)
}

func TestMailerUnconfiguredIsNoop(t *testing.T) {
	var m *Mailer
	require.NoError(t, m.Send("ada@example.com", "subject", "body"))

	m = &Mailer{}
	require.NoError(t, m.Send("ada@example.com", "subject", "body"))

	m = &Mailer{Addr: "127.0.0.1:1025", From: "no-reply@billfold.local"}
	require.NoError(t, m.Send("", "subject", "body"))
}
