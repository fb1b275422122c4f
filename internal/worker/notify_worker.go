package worker

// Processes status-change notification jobs from QueueNotify.
// Notifications are fire-and-forget: the status update itself has already
// committed by the time a job lands here.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// NotifyPayload is the job envelope sent to QueueNotify.
type NotifyPayload struct {
	ToEmail   string `json:"to_email"`
	RequestID uint   `json:"request_id"`
	Title     string `json:"title"`
	NewStatus string `json:"new_status"`
}

// Sender delivers a plain-text email. Satisfied by *infra.Mailer.
type Sender interface {
	Send(to, subject, body string) error
}

// NotifyWorker sends status-change emails via SMTP.
type NotifyWorker struct {
	mailer Sender
}

func NewNotifyWorker(mailer Sender) *NotifyWorker {
	return &NotifyWorker{mailer: mailer}
}

// Process sends one notification email.
func (w *NotifyWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload NotifyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("notify_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("notify_worker: empty to_email — skipping")
		return nil
	}

	subject := fmt.Sprintf("Procurement request #%d is now %s", payload.RequestID, payload.NewStatus)
	body := fmt.Sprintf("The status of procurement request #%d (%s) changed to %q.\n",
		payload.RequestID, payload.Title, payload.NewStatus)

	if err := w.mailer.Send(payload.ToEmail, subject, body); err != nil {
		return fmt.Errorf("notify_worker: send email: %w", err)
	}
	log.Info().Uint("request_id", payload.RequestID).Str("to", payload.ToEmail).Msg("notify_worker: status notification sent")
	return nil
}
