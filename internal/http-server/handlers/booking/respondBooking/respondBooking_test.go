package respondBooking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minderbook/internal/http-server/handlers/booking/respondBooking/mocks"
	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/logger/handlers/slogdiscard"
	"minderbook/internal/models"
	"minderbook/internal/storage/redisstore"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRespondBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	minderSession := &redisstore.Session{
		UserID: "minder-1",
		Role:   models.RoleChildminder,
		Name:   "Niamh Kelly",
	}

	booking := func(status models.BookingStatus) *models.Booking {
		return &models.Booking{
			ID:            "booking-1",
			ParentID:      "parent-1",
			ChildminderID: "minder-1",
			StartTime:     time.Now().Add(48 * time.Hour),
			EndTime:       time.Now().Add(51 * time.Hour),
			Status:        status,
		}
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier)
		expectedStatus int
		expectedError  string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Accept pending booking",
			requestBody: `{"action": "accept"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				confirmed := booking(models.BookingConfirmed)

				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingPending), nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingConfirmed, "").
					Return(confirmed, nil)
				bookings.On("GetUser", "parent-1").Return(&models.User{ID: "parent-1"}, nil)
				bookings.On("GetUser", "minder-1").Return(&models.User{ID: "minder-1"}, nil)
				notifier.On("BookingStatusChanged", mock.Anything, confirmed, models.BookingPending,
					mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"CONFIRMED"`)
			},
		},
		{
			name:        "Decline requires a note",
			requestBody: `{"action": "decline"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingPending), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "cancellation note is required to decline",
		},
		{
			name:        "Decline with note cancels",
			requestBody: `{"action": "decline", "note": "fully booked that week"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				cancelled := booking(models.BookingCancelled)

				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingPending), nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingCancelled, "fully booked that week").
					Return(cancelled, nil)
				bookings.On("GetUser", "parent-1").Return(&models.User{ID: "parent-1"}, nil)
				bookings.On("GetUser", "minder-1").Return(&models.User{ID: "minder-1"}, nil)
				notifier.On("BookingStatusChanged", mock.Anything, cancelled, models.BookingPending,
					mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"CANCELLED"`)
			},
		},
		{
			name:        "Complete confirmed booking",
			requestBody: `{"action": "complete"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				completed := booking(models.BookingCompleted)

				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingConfirmed), nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingCompleted, "").
					Return(completed, nil)
				bookings.On("GetUser", "parent-1").Return(&models.User{ID: "parent-1"}, nil)
				bookings.On("GetUser", "minder-1").Return(&models.User{ID: "minder-1"}, nil)
				notifier.On("BookingStatusChanged", mock.Anything, completed, models.BookingConfirmed,
					mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"COMPLETED"`)
			},
		},
		{
			name:        "Accept an already confirmed booking",
			requestBody: `{"action": "accept"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingConfirmed), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "booking is not in a state that allows this action",
		},
		{
			name:        "Complete a pending booking",
			requestBody: `{"action": "complete"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingPending), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "booking is not in a state that allows this action",
		},
		{
			name:        "Another childminder's booking",
			requestBody: `{"action": "accept"}`,
			mockSetup: func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {
				b := booking(models.BookingPending)
				b.ChildminderID = "minder-2"
				bookings.On("GetBooking", "booking-1").Return(b, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "booking belongs to another childminder",
		},
		{
			name:           "Unknown action",
			requestBody:    `{"action": "postpone"}`,
			mockSetup:      func(bookings *mocks.BookingResponder, notifier *mocks.StatusNotifier) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "Action")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockBookings := mocks.NewBookingResponder(t)
			mockNotifier := mocks.NewStatusNotifier(t)
			tc.mockSetup(mockBookings, mockNotifier)

			handler := New(logger, mockBookings, mockNotifier)

			req, err := http.NewRequest("POST", "/api/bookings/booking-1/respond", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "booking-1")

			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = mwauth.WithSession(ctx, minderSession)
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedError)
			}
			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
