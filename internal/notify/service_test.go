package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"minderbook/internal/lib/logger/handlers/slogdiscard"
	"minderbook/internal/models"
	"minderbook/internal/notify/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	failTo map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTo[to] {
		return errors.New("mailbox rejected")
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeActivity) RecordActivity(userID, action, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, userID+":"+action)
	return nil
}

type fakePublisher struct {
	published []events.BookingStatusChanged
	err       error
}

func (f *fakePublisher) PublishBookingStatusChanged(_ context.Context, evt events.BookingStatusChanged) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, evt)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func testBooking() (*models.Booking, *models.User, *models.User) {
	b := &models.Booking{
		ID:            "b1",
		ParentID:      "p1",
		ChildminderID: "m1",
		StartTime:     time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
		Status:        models.BookingConfirmed,
	}
	parent := &models.User{ID: "p1", Name: "Aoife", Email: "aoife@example.com", Role: models.RoleParent}
	minder := &models.User{ID: "m1", Name: "Niamh", Email: "niamh@example.com", Role: models.RoleChildminder}
	return b, parent, minder
}

func TestBookingStatusChangedBothRecipients(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	activity := &fakeActivity{}
	publisher := &fakePublisher{}

	svc := NewService(slogdiscard.NewDiscardLogger(), mailer, activity, publisher)

	b, parent, minder := testBooking()
	svc.BookingStatusChanged(context.Background(), b, models.BookingPending, parent, minder)

	assert.ElementsMatch(t, []string{"aoife@example.com", "niamh@example.com"}, mailer.sent)
	assert.ElementsMatch(t, []string{"p1:booking_status_email", "m1:booking_status_email"}, activity.entries)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, models.BookingPending, publisher.published[0].OldStatus)
	assert.Equal(t, models.BookingConfirmed, publisher.published[0].NewStatus)
}

func TestBookingStatusChangedOneRecipientFails(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{failTo: map[string]bool{"niamh@example.com": true}}
	activity := &fakeActivity{}

	svc := NewService(slogdiscard.NewDiscardLogger(), mailer, activity, &fakePublisher{})

	b, parent, minder := testBooking()
	svc.BookingStatusChanged(context.Background(), b, models.BookingPending, parent, minder)

	// The parent mail still goes out, and only it is recorded.
	assert.Equal(t, []string{"aoife@example.com"}, mailer.sent)
	assert.Equal(t, []string{"p1:booking_status_email"}, activity.entries)
}

func TestBookingStatusChangedPublisherFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	svc := NewService(slogdiscard.NewDiscardLogger(), mailer, &fakeActivity{}, &fakePublisher{err: errors.New("broker down")})

	b, parent, minder := testBooking()
	svc.BookingStatusChanged(context.Background(), b, models.BookingPending, parent, minder)

	assert.Len(t, mailer.sent, 2)
}

func TestTicketCreatedNotifiesAdminsAndSubmitter(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	activity := &fakeActivity{}
	svc := NewService(slogdiscard.NewDiscardLogger(), mailer, activity, &fakePublisher{})

	ticket := &models.SupportTicket{ID: "t1", Subject: "Billing issue", Category: "billing", Priority: "high"}
	submitter := &models.User{ID: "u1", Name: "Aoife", Email: "aoife@example.com"}
	admins := []models.User{
		{ID: "a1", Name: "Admin One", Email: "a1@minderbook.ie"},
		{ID: "a2", Name: "Admin Two", Email: "a2@minderbook.ie"},
	}

	svc.TicketCreated(context.Background(), ticket, submitter, admins)

	assert.ElementsMatch(t,
		[]string{"a1@minderbook.ie", "a2@minderbook.ie", "aoife@example.com"},
		mailer.sent,
	)
}

func TestWelcomeKeyedByRole(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	svc := NewService(slogdiscard.NewDiscardLogger(), mailer, &fakeActivity{}, &fakePublisher{})

	svc.Welcome(context.Background(), &models.User{ID: "u1", Name: "Aoife", Email: "aoife@example.com", Role: models.RoleParent})
	svc.Welcome(context.Background(), &models.User{ID: "u2", Name: "Niamh", Email: "niamh@example.com", Role: models.RoleChildminder})

	assert.Equal(t, []string{"aoife@example.com", "niamh@example.com"}, mailer.sent)
}
