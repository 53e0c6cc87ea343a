package logout

import (
	"context"
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionDeleter
type SessionDeleter interface {
	Delete(ctx context.Context, token string) error
}

func New(log *slog.Logger, sessions SessionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log = log.With(slog.String("op", op))

		cookie, err := r.Cookie(mwauth.SessionCookie)
		if err == nil {
			if err = sessions.Delete(r.Context(), cookie.Value); err != nil {
				log.Error("failed to delete session", sl.Err(err))
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     mwauth.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		render.JSON(w, r, response.OK())
	}
}
