package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// DueReminderJob finds sent invoices whose due date falls inside the
// reminder window and queues one reminder email per invoice.
type DueReminderJob struct {
	Pool    *pgxpool.Pool
	Enqueue mailEnqueuer
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewDueReminderJob initialises the reminder scan handler.
func NewDueReminderJob(pool *pgxpool.Pool, enqueue mailEnqueuer, logger *slog.Logger) *DueReminderJob {
	return &DueReminderJob{
		Pool:    pool,
		Enqueue: enqueue,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type dueInvoice struct {
	Number        string
	CustomerName  string
	CustomerEmail *string
	DueDate       time.Time
	Total         float64
	BusinessName  string
}

// Handle executes the reminder scan.
func (j *DueReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("due reminder: handler not configured")
	}
	var payload DueReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WindowHours <= 0 {
		payload.WindowHours = 72
	}

	now := j.now()
	until := now.Add(time.Duration(payload.WindowHours) * time.Hour)
	logger := j.logger().With(slog.Int("window_hours", payload.WindowHours))
	logger.Info("starting due reminder scan")

	due, err := j.scan(ctx, now, until)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	queued := 0
	for _, inv := range due {
		if inv.CustomerEmail == nil || *inv.CustomerEmail == "" {
			continue
		}
		payload := SendEmailPayload{
			To:      *inv.CustomerEmail,
			Subject: fmt.Sprintf("Invoice %s is due %s", inv.Number, inv.DueDate.Format("January 2, 2006")),
			Body: fmt.Sprintf(
				"Hello %s,\n\nThis is a reminder that invoice %s for %.2f from %s is due on %s.\n",
				inv.CustomerName, inv.Number, inv.Total, inv.BusinessName, inv.DueDate.Format("January 2, 2006"),
			),
		}
		if _, err := j.Enqueue.EnqueueSendEmail(ctx, payload); err != nil {
			logger.Warn("enqueue reminder mail", slog.String("number", inv.Number), slog.Any("error", err))
			continue
		}
		queued++
	}

	logger.Info("completed due reminder scan",
		slog.Int("due", len(due)),
		slog.Int("queued", queued),
		slog.Duration("duration", time.Since(now)),
	)
	return nil
}

func (j *DueReminderJob) scan(ctx context.Context, from, until time.Time) ([]dueInvoice, error) {
	query := `
		SELECT i.invoice_number, i.customer_name, i.customer_email, i.due_date, i.total,
		       COALESCE(b.business_name, 'My Business')
		FROM invoices i
		LEFT JOIN business_info b ON b.owner_id = i.owner_id
		WHERE i.status = 'sent'
		  AND i.due_date IS NOT NULL
		  AND i.due_date >= $1
		  AND i.due_date < $2
		ORDER BY i.due_date`

	rows, err := j.Pool.Query(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("due reminder: query: %w", err)
	}
	defer rows.Close()

	var out []dueInvoice
	for rows.Next() {
		var inv dueInvoice
		if err := rows.Scan(&inv.Number, &inv.CustomerName, &inv.CustomerEmail, &inv.DueDate, &inv.Total, &inv.BusinessName); err != nil {
			return nil, fmt.Errorf("due reminder: scan: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (j *DueReminderJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func (j *DueReminderJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
