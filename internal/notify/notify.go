package notify

import (
	"context"
	"log/slog"
)

// Mailer delivers one HTML email. Implementations: the Graph client in
// mailgraph, and ConsoleMailer for local development.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ActivityRecorder persists one audit-trail row per successful send.
type ActivityRecorder interface {
	RecordActivity(userID, action, detail string) error
}

// ConsoleMailer logs instead of delivering. Used when mail is disabled
// in config (local development).
type ConsoleMailer struct {
	Log *slog.Logger
}

func (c *ConsoleMailer) Send(_ context.Context, to, subject, _ string) error {
	c.Log.Info("mail suppressed (console mailer)",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
