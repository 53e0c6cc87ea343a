package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	response.Response
	User     *models.User `json:"user"`
	Redirect string       `json:"redirect"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CredentialChecker
type CredentialChecker interface {
	GetUserByEmail(email string) (*models.User, string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionCreator
type SessionCreator interface {
	Create(ctx context.Context, u *models.User) (string, error)
}

func New(log *slog.Logger, users CredentialChecker, sessions SessionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log = log.With(slog.String("op", op))

		var req LoginRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		user, hash, err := users.GetUserByEmail(req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid email or password"))
				return
			}

			log.Error("failed to look up user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign in"))
			return
		}

		if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}

		token, err := sessions.Create(r.Context(), user)
		if err != nil {
			log.Error("failed to create session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign in"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     mwauth.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("user signed in", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

		render.JSON(w, r, LoginResponse{
			Response: response.OK(),
			User:     user,
			Redirect: mwauth.DefaultPath(user.Role),
		})
	}
}
