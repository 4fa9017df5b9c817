package worker

// notify_worker.go
// Processes submission-notification jobs from QueueNotify.
// Emails the planning admin when a role submits its monthly adjustments.

import (
	"context"
	"encoding/json"
	"fmt"

	"rofoportal/internal/infra"

	"github.com/rs/zerolog/log"
)

// NotifyJobPayload is the job envelope sent to QueueNotify.
type NotifyJobPayload struct {
	SubmissionID   string `json:"submission_id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	SubmissionDate string `json:"submission_date"`
	RowCount       int    `json:"row_count"`
}

// NotifyWorker emails the admin about an accepted submission. Delivery is
// best effort: a failed send is logged and dropped, never retried against
// the submission itself.
type NotifyWorker struct {
	mailer  *infra.Mailer
	toEmail string
}

func NewNotifyWorker(mailer *infra.Mailer, toEmail string) *NotifyWorker {
	return &NotifyWorker{mailer: mailer, toEmail: toEmail}
}

// Process sends one notification email.
func (w *NotifyWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload NotifyJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notify_worker: invalid payload")
		return
	}
	if w.toEmail == "" {
		log.Warn().Msg("notify_worker: no admin email configured — skipping")
		return
	}

	subject := fmt.Sprintf("Forecast submission %s (%s)", payload.SubmissionID, payload.Role)
	body := fmt.Sprintf(
		"User %s (%s) submitted %d forecast rows at %s.\nSubmission ID: %s\n",
		payload.Username, payload.Role, payload.RowCount, payload.SubmissionDate, payload.SubmissionID,
	)
	if err := w.mailer.SendNotification(w.toEmail, subject, body); err != nil {
		log.Error().Err(err).Str("submission_id", payload.SubmissionID).Msg("notify_worker: failed to send email")
		return
	}
	log.Info().Str("submission_id", payload.SubmissionID).Msg("notify_worker: admin notified")
}
