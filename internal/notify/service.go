package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/notify/events"
)

// Service composes and dispatches all outbound notifications. Every
// send is best-effort and independent: a failure is logged, recorded
// nowhere else, and never surfaced to the HTTP caller.
type Service struct {
	log       *slog.Logger
	mailer    Mailer
	activity  ActivityRecorder
	publisher events.Publisher
}

func NewService(log *slog.Logger, mailer Mailer, activity ActivityRecorder, publisher events.Publisher) *Service {
	return &Service{
		log:       log.With(slog.String("component", "notify")),
		mailer:    mailer,
		activity:  activity,
		publisher: publisher,
	}
}

// send delivers one email and, on success, writes the audit row. All
// failures are swallowed after logging.
func (s *Service) send(ctx context.Context, userID, email, subject string, tmpl *template.Template, data any, action string) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		s.log.Error("failed to render email template",
			slog.String("action", action), sl.Err(err))
		return
	}

	if err := s.mailer.Send(ctx, email, subject, body.String()); err != nil {
		s.log.Error("failed to send email",
			slog.String("to", email),
			slog.String("action", action),
			sl.Err(err),
		)
		return
	}

	if err := s.activity.RecordActivity(userID, action, subject); err != nil {
		s.log.Error("failed to record activity", slog.String("action", action), sl.Err(err))
	}
}

func statusLabel(status models.BookingStatus) string {
	label := strings.ToLower(string(status))
	return strings.ReplaceAll(label, "_", " ")
}

type bookingStatusData struct {
	RecipientName    string
	CounterpartyName string
	Start            string
	End              string
	StatusLabel      string
	Note             string
}

// BookingStatusChanged emails both parties and publishes the status
// event. One recipient failing never blocks the other.
func (s *Service) BookingStatusChanged(ctx context.Context, b *models.Booking, old models.BookingStatus, parent, minder *models.User) {
	subject := fmt.Sprintf("Booking %s — %s", statusLabel(b.Status), b.StartTime.Format("2 Jan 2006"))

	s.send(ctx, parent.ID, parent.Email, subject, bookingStatusTmpl, bookingStatusData{
		RecipientName:    parent.Name,
		CounterpartyName: minder.Name,
		Start:            b.StartTime.Format(timeLayout),
		End:              b.EndTime.Format(timeLayout),
		StatusLabel:      statusLabel(b.Status),
		Note:             b.CancellationNote,
	}, "booking_status_email")

	s.send(ctx, minder.ID, minder.Email, subject, bookingStatusTmpl, bookingStatusData{
		RecipientName:    minder.Name,
		CounterpartyName: parent.Name,
		Start:            b.StartTime.Format(timeLayout),
		End:              b.EndTime.Format(timeLayout),
		StatusLabel:      statusLabel(b.Status),
		Note:             b.CancellationNote,
	}, "booking_status_email")

	err := s.publisher.PublishBookingStatusChanged(ctx, events.BookingStatusChanged{
		BookingID:     b.ID,
		ParentID:      b.ParentID,
		ChildminderID: b.ChildminderID,
		OldStatus:     old,
		NewStatus:     b.Status,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to publish booking status event",
			slog.String("booking_id", b.ID), sl.Err(err))
	}
}

// Welcome sends the role-keyed welcome email after registration.
func (s *Service) Welcome(ctx context.Context, u *models.User) {
	tmpl := welcomeParentTmpl
	if u.Role == models.RoleChildminder {
		tmpl = welcomeChildminderTmpl
	}

	s.send(ctx, u.ID, u.Email, "Welcome to minderbook", tmpl, u, "welcome_email")
}

type newMessageData struct {
	RecipientName string
	SenderName    string
}

func (s *Service) NewMessage(ctx context.Context, recipient *models.User, senderName string) {
	s.send(ctx, recipient.ID, recipient.Email, "You have a new message", newMessageTmpl, newMessageData{
		RecipientName: recipient.Name,
		SenderName:    senderName,
	}, "new_message_email")
}

func (s *Service) ProfileUpdated(ctx context.Context, u *models.User) {
	s.send(ctx, u.ID, u.Email, "Your profile was updated", profileUpdatedTmpl, u, "profile_update_email")
}

type ticketCreatedData struct {
	RecipientName string
	SubmitterName string
	Subject       string
	Category      string
	Priority      string
	ForAdmin      bool
}

// TicketCreated notifies every admin plus the submitter.
func (s *Service) TicketCreated(ctx context.Context, t *models.SupportTicket, submitter *models.User, admins []models.User) {
	subject := "Support ticket: " + t.Subject

	for _, admin := range admins {
		s.send(ctx, admin.ID, admin.Email, subject, ticketCreatedTmpl, ticketCreatedData{
			RecipientName: admin.Name,
			SubmitterName: submitter.Name,
			Subject:       t.Subject,
			Category:      t.Category,
			Priority:      t.Priority,
			ForAdmin:      true,
		}, "ticket_created_email")
	}

	s.send(ctx, submitter.ID, submitter.Email, subject, ticketCreatedTmpl, ticketCreatedData{
		RecipientName: submitter.Name,
		SubmitterName: submitter.Name,
		Subject:       t.Subject,
		Category:      t.Category,
		Priority:      t.Priority,
	}, "ticket_created_email")
}

type ticketReplyData struct {
	RecipientName string
	AuthorName    string
	Subject       string
}

// TicketReplied notifies the side that did not write the reply.
func (s *Service) TicketReplied(ctx context.Context, t *models.SupportTicket, recipient *models.User, authorName string) {
	s.send(ctx, recipient.ID, recipient.Email, "New reply: "+t.Subject, ticketReplyTmpl, ticketReplyData{
		RecipientName: recipient.Name,
		AuthorName:    authorName,
		Subject:       t.Subject,
	}, "ticket_reply_email")
}

type documentReviewedData struct {
	Name         string
	DocumentName string
	StatusLabel  string
	Note         string
}

func (s *Service) DocumentReviewed(ctx context.Context, d *models.Document, owner *models.User) {
	label := strings.ToLower(string(d.Status))

	s.send(ctx, owner.ID, owner.Email, "Document "+label+": "+d.Name, documentReviewedTmpl, documentReviewedData{
		Name:         owner.Name,
		DocumentName: d.Name,
		StatusLabel:  label,
		Note:         d.ReviewNote,
	}, "document_review_email")
}
