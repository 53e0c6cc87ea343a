package updateBookingStatus

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minderbook/internal/http-server/handlers/admin/updateBookingStatus/mocks"
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

func TestUpdateBookingStatusHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	adminSession := &redisstore.Session{
		UserID: "admin-1",
		Role:   models.RoleAdmin,
		Name:   "Site Admin",
	}

	confirmed := &models.Booking{
		ID:            "booking-1",
		ParentID:      "parent-1",
		ChildminderID: "minder-1",
		StartTime:     time.Now().Add(5 * time.Hour),
		EndTime:       time.Now().Add(8 * time.Hour),
		Status:        models.BookingConfirmed,
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(bookings *mocks.BookingOverrider, notifier *mocks.StatusNotifier)
		expectedStatus int
		expectedError  string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Override to completed with reason",
			requestBody: `{"status": "COMPLETED", "admin_reason": "resolved billing dispute"}`,
			mockSetup: func(bookings *mocks.BookingOverrider, notifier *mocks.StatusNotifier) {
				completed := *confirmed
				completed.Status = models.BookingCompleted

				bookings.On("GetBooking", "booking-1").Return(confirmed, nil)
				bookings.On("UpdateBookingStatus", "booking-1", models.BookingCompleted, "").
					Return(&completed, nil)
				bookings.On("RecordActivity", "admin-1", "admin_booking_override", "resolved billing dispute").
					Return(nil)
				bookings.On("GetUser", "parent-1").Return(&models.User{ID: "parent-1"}, nil)
				bookings.On("GetUser", "minder-1").Return(&models.User{ID: "minder-1"}, nil)
				notifier.On("BookingStatusChanged", mock.Anything, &completed, models.BookingConfirmed,
					mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"COMPLETED"`)
			},
		},
		{
			name:           "Missing admin reason",
			requestBody:    `{"status": "CANCELLED"}`,
			mockSetup:      func(bookings *mocks.BookingOverrider, notifier *mocks.StatusNotifier) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "AdminReason")
			},
		},
		{
			name:           "Blank admin reason",
			requestBody:    `{"status": "CANCELLED", "admin_reason": "   "}`,
			mockSetup:      func(bookings *mocks.BookingOverrider, notifier *mocks.StatusNotifier) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "admin reason is required",
		},
		{
			name:           "Unknown status",
			requestBody:    `{"status": "PAUSED", "admin_reason": "some reason"}`,
			mockSetup:      func(bookings *mocks.BookingOverrider, notifier *mocks.StatusNotifier) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown booking status",
		},
		{
			name:        "Booking not found",
			requestBody: `{"status": "CANCELLED", "admin_reason": "duplicate entry"}`,
			mockSetup: func(bookings *mocks.BookingOverrider, notifier *mocks.StatusNotifier) {
				bookings.On("GetBooking", "booking-1").Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "booking not found",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockBookings := mocks.NewBookingOverrider(t)
			mockNotifier := mocks.NewStatusNotifier(t)
			tc.mockSetup(mockBookings, mockNotifier)

			handler := New(logger, mockBookings, mockNotifier)

			req, err := http.NewRequest("PATCH", "/api/admin/bookings/booking-1/status", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "booking-1")

			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = mwauth.WithSession(ctx, adminSession)
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
