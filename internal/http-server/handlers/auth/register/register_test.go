package register

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"minderbook/internal/http-server/handlers/auth/register/mocks"
	"minderbook/internal/lib/logger/handlers/slogdiscard"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Parent success without address",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "parent"
			}`,
			mockSetup: func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {
				users.On("CreateUser", mock.AnythingOfType("*models.User"), mock.AnythingOfType("string")).
					Return("user-1", nil)
				notifier.On("Welcome", mock.Anything, mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","user_id":"user-1"}`,
		},
		{
			name: "Childminder success with full details",
			requestBody: `{
				"name": "Niamh Kelly",
				"email": "niamh@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "childminder",
				"phone": "0851234567",
				"street_address": "12 Main St",
				"city": "Galway",
				"county": "Galway",
				"hourly_rate": 15.5
			}`,
			mockSetup: func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {
				users.On("CreateUser", mock.AnythingOfType("*models.User"), mock.AnythingOfType("string")).
					Return("user-2", nil)
				notifier.On("Welcome", mock.Anything, mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","user_id":"user-2"}`,
		},
		{
			name: "Childminder missing required fields",
			requestBody: `{
				"name": "Niamh Kelly",
				"email": "niamh@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "childminder",
				"phone": "0851234567"
			}`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"please fill in all required fields"}`,
		},
		{
			name: "Childminder with zero hourly rate",
			requestBody: `{
				"name": "Niamh Kelly",
				"email": "niamh@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "childminder",
				"phone": "0851234567",
				"street_address": "12 Main St",
				"city": "Galway",
				"county": "Galway",
				"hourly_rate": 0
			}`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"please fill in all required fields"}`,
		},
		{
			name: "Parent with partial address",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "parent",
				"street_address": "12 Main St",
				"city": "Galway"
			}`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"complete all address fields or leave them all empty"}`,
		},
		{
			name: "Parent with full address",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "parent",
				"street_address": "12 Main St",
				"city": "Galway",
				"county": "Galway"
			}`,
			mockSetup: func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {
				users.On("CreateUser", mock.AnythingOfType("*models.User"), mock.AnythingOfType("string")).
					Return("user-3", nil)
				notifier.On("Welcome", mock.Anything, mock.AnythingOfType("*models.User")).Return()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","user_id":"user-3"}`,
		},
		{
			name: "Passwords do not match",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "different",
				"role": "parent"
			}`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"passwords do not match"}`,
		},
		{
			name: "Invalid role",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "admin"
			}`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "Role")
			},
		},
		{
			name: "Password too short",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "short",
				"confirm_password": "short",
				"role": "parent"
			}`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "Password")
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `invalid json`,
			mockSetup:      func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name: "Email already registered",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "parent"
			}`,
			mockSetup: func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {
				users.On("CreateUser", mock.AnythingOfType("*models.User"), mock.AnythingOfType("string")).
					Return("", storage.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"email already registered"}`,
		},
		{
			name: "Internal server error",
			requestBody: `{
				"name": "Aoife Byrne",
				"email": "aoife@example.com",
				"password": "supersecret",
				"confirm_password": "supersecret",
				"role": "parent"
			}`,
			mockSetup: func(users *mocks.UserCreator, notifier *mocks.WelcomeSender) {
				users.On("CreateUser", mock.AnythingOfType("*models.User"), mock.AnythingOfType("string")).
					Return("", errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to register"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUsers := mocks.NewUserCreator(t)
			mockNotifier := mocks.NewWelcomeSender(t)
			tc.mockSetup(mockUsers, mockNotifier)

			handler := New(logger, mockUsers, mockNotifier)

			req, err := http.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestValidateRoleFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		req      RegisterRequest
		expected string
	}{
		{
			name:     "Parent with no address",
			req:      RegisterRequest{Role: string(models.RoleParent)},
			expected: "",
		},
		{
			name: "Parent with only county",
			req: RegisterRequest{
				Role:   string(models.RoleParent),
				County: "Cork",
			},
			expected: "complete all address fields or leave them all empty",
		},
		{
			name: "Childminder without phone",
			req: RegisterRequest{
				Role:          string(models.RoleChildminder),
				StreetAddress: "12 Main St",
				City:          "Cork",
				County:        "Cork",
				HourlyRate:    12,
			},
			expected: "please fill in all required fields",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, validateRoleFields(&tc.req))
		})
	}
}
