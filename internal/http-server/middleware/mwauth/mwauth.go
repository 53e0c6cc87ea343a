package mwauth

import (
	"context"
	"log/slog"
	"net/http"

	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage/redisstore"

	"github.com/go-chi/render"
)

const SessionCookie = "minderbook_session"

type contextKey string

const sessionKey contextKey = "session"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionGetter
type SessionGetter interface {
	Get(ctx context.Context, token string) (*redisstore.Session, error)
}

// defaultPaths is the single role→landing-path table replacing the
// per-page redirect chains of the old client.
var defaultPaths = map[models.Role]string{
	models.RoleParent:      "/dashboard/parent",
	models.RoleChildminder: "/dashboard/childminder",
	models.RoleAdmin:       "/admin",
}

// DefaultPath returns the landing path for a role after sign-in.
func DefaultPath(role models.Role) string {
	if p, ok := defaultPaths[role]; ok {
		return p
	}
	return "/"
}

// New resolves the session cookie and, when valid, attaches the session
// to the request context. Requests without a session pass through so
// public routes keep working; RequireRole does the enforcement.
func New(log *slog.Logger, sessions SessionGetter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				log.Debug("session lookup failed", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		}

		return http.HandlerFunc(fn)
	}
}

// WithSession attaches a resolved session to the context.
func WithSession(ctx context.Context, sess *redisstore.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the session attached by New, or nil.
func FromContext(ctx context.Context) *redisstore.Session {
	sess, _ := ctx.Value(sessionKey).(*redisstore.Session)
	return sess
}

// RequireRole rejects requests whose session is missing (401) or whose
// role is not in the allow-list (403).
func RequireRole(roles ...models.Role) func(next http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			sess := FromContext(r.Context())
			if sess == nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			if !allowed[sess.Role] {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
