package cancelBooking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minderbook/internal/http-server/handlers/booking/cancelBooking/mocks"
	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/logger/handlers/slogdiscard"
	"minderbook/internal/models"
	"minderbook/internal/storage"
	"minderbook/internal/storage/redisstore"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	parentSession := &redisstore.Session{
		UserID: "parent-1",
		Role:   models.RoleParent,
		Name:   "Aoife Byrne",
	}

	booking := func(status models.BookingStatus, startsIn time.Duration) *models.Booking {
		return &models.Booking{
			ID:            "booking-1",
			ParentID:      "parent-1",
			ChildminderID: "minder-1",
			StartTime:     time.Now().Add(startsIn),
			EndTime:       time.Now().Add(startsIn + 3*time.Hour),
			Status:        status,
		}
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier)
		expectedStatus int
		expectedError  string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Pending booking with ample notice cancels outright",
			requestBody: `{}`,
			mockSetup: func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier) {
				b := booking(models.BookingPending, 72*time.Hour)
				cancelled := booking(models.BookingCancelled, 72*time.Hour)

				bookings.On("GetBooking", "booking-1").Return(b, nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingCancelled, "").
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
			name:        "Confirmed booking with short notice is late-cancelled",
			requestBody: `{"note": "child is sick"}`,
			mockSetup: func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier) {
				b := booking(models.BookingConfirmed, 10*time.Hour)
				late := booking(models.BookingLateCancelled, 10*time.Hour)

				bookings.On("GetBooking", "booking-1").Return(b, nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingLateCancelled, "child is sick").
					Return(late, nil)
				bookings.On("GetUser", "parent-1").Return(&models.User{ID: "parent-1"}, nil)
				bookings.On("GetUser", "minder-1").Return(&models.User{ID: "minder-1"}, nil)
				notifier.On("BookingStatusChanged", mock.Anything, late, models.BookingConfirmed,
					mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"LATE_CANCELLED"`)
			},
		},
		{
			name:        "Confirmed booking with ample notice cancels normally",
			requestBody: `{}`,
			mockSetup: func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier) {
				b := booking(models.BookingConfirmed, 48*time.Hour)
				cancelled := booking(models.BookingCancelled, 48*time.Hour)

				bookings.On("GetBooking", "booking-1").Return(b, nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingCancelled, "").
					Return(cancelled, nil)
				bookings.On("GetUser", "parent-1").Return(&models.User{ID: "parent-1"}, nil)
				bookings.On("GetUser", "minder-1").Return(&models.User{ID: "minder-1"}, nil)
				notifier.On("BookingStatusChanged", mock.Anything, cancelled, models.BookingConfirmed,
					mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"CANCELLED"`)
			},
		},
		{
			name:        "Completed booking cannot be cancelled",
			requestBody: `{}`,
			mockSetup: func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier) {
				bookings.On("GetBooking", "booking-1").Return(booking(models.BookingCompleted, -48*time.Hour), nil)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "booking can no longer be cancelled",
		},
		{
			name:        "Booking not found",
			requestBody: `{}`,
			mockSetup: func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier) {
				bookings.On("GetBooking", "booking-1").Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "booking not found",
		},
		{
			name:        "Another parent's booking",
			requestBody: `{}`,
			mockSetup: func(bookings *mocks.BookingCanceller, notifier *mocks.StatusNotifier) {
				b := booking(models.BookingPending, 2*time.Hour)
				b.ParentID = "parent-2"
				bookings.On("GetBooking", "booking-1").Return(b, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "booking belongs to another parent",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockBookings := mocks.NewBookingCanceller(t)
			mockNotifier := mocks.NewStatusNotifier(t)
			tc.mockSetup(mockBookings, mockNotifier)

			handler := New(logger, mockBookings, mockNotifier)

			req, err := http.NewRequest("POST", "/api/bookings/booking-1/cancel", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "booking-1")

			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = mwauth.WithSession(ctx, parentSession)
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
