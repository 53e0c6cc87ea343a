package login

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"minderbook/internal/http-server/handlers/auth/login/mocks"
	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/logger/handlers/slogdiscard"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	parent := &models.User{
		ID:    "user-1",
		Name:  "Aoife Byrne",
		Email: "aoife@example.com",
		Role:  models.RoleParent,
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator)
		expectedStatus int
		expectedBody   string
		checkResponse  func(t *testing.T, rr *httptest.ResponseRecorder)
	}{
		{
			name:        "Success",
			requestBody: `{"email": "aoife@example.com", "password": "supersecret"}`,
			mockSetup: func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator) {
				users.On("GetUserByEmail", "aoife@example.com").Return(parent, string(hash), nil)
				sessions.On("Create", mock.Anything, parent).Return("session-token", nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Contains(t, rr.Body.String(), `"status":"OK"`)
				assert.Contains(t, rr.Body.String(), `"redirect":"/dashboard/parent"`)

				cookies := rr.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, mwauth.SessionCookie, cookies[0].Name)
				assert.Equal(t, "session-token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			},
		},
		{
			name:        "Unknown email",
			requestBody: `{"email": "nobody@example.com", "password": "supersecret"}`,
			mockSetup: func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator) {
				users.On("GetUserByEmail", "nobody@example.com").Return(nil, "", storage.ErrNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid email or password"}`,
		},
		{
			name:        "Wrong password",
			requestBody: `{"email": "aoife@example.com", "password": "wrongpassword"}`,
			mockSetup: func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator) {
				users.On("GetUserByEmail", "aoife@example.com").Return(parent, string(hash), nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid email or password"}`,
		},
		{
			name:           "Missing email",
			requestBody:    `{"password": "supersecret"}`,
			mockSetup:      func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Contains(t, rr.Body.String(), `"status":"Error"`)
				assert.Contains(t, rr.Body.String(), "Email")
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `invalid json`,
			mockSetup:      func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Session store failure",
			requestBody: `{"email": "aoife@example.com", "password": "supersecret"}`,
			mockSetup: func(users *mocks.CredentialChecker, sessions *mocks.SessionCreator) {
				users.On("GetUserByEmail", "aoife@example.com").Return(parent, string(hash), nil)
				sessions.On("Create", mock.Anything, parent).Return("", errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to sign in"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUsers := mocks.NewCredentialChecker(t)
			mockSessions := mocks.NewSessionCreator(t)
			tc.mockSetup(mockUsers, mockSessions)

			handler := New(logger, mockUsers, mockSessions)

			req, err := http.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			}
			if tc.checkResponse != nil {
				tc.checkResponse(t, rr)
			}
		})
	}
}

func TestDefaultPathPerRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/dashboard/parent", mwauth.DefaultPath(models.RoleParent))
	assert.Equal(t, "/dashboard/childminder", mwauth.DefaultPath(models.RoleChildminder))
	assert.Equal(t, "/admin", mwauth.DefaultPath(models.RoleAdmin))
	assert.Equal(t, "/", mwauth.DefaultPath(models.Role("unknown")))
}
