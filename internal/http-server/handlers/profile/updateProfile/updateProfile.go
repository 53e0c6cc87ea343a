package updateProfile

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
)

type UpdateRequest struct {
	Name            string  `json:"name" validate:"required"`
	Phone           string  `json:"phone"`
	StreetAddress   string  `json:"street_address"`
	City            string  `json:"city"`
	County          string  `json:"county"`
	Eircode         string  `json:"eircode"`
	HourlyRate      float64 `json:"hourly_rate" validate:"min=0"`
	YearsExperience int     `json:"years_experience" validate:"min=0"`
	Languages       string  `json:"languages"`
	AgeGroups       string  `json:"age_groups"`
	AvailableDays   string  `json:"available_days"`
}

type UpdateResponse struct {
	response.Response
	User *models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProfileUpdater
type ProfileUpdater interface {
	UpdateProfile(u *models.User) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	ProfileUpdated(ctx context.Context, u *models.User)
}

func New(log *slog.Logger, users ProfileUpdater, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.updateProfile.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		var req UpdateRequest

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

		updated, err := users.UpdateProfile(&models.User{
			ID:              sess.UserID,
			Name:            req.Name,
			Phone:           req.Phone,
			StreetAddress:   req.StreetAddress,
			City:            req.City,
			County:          req.County,
			Eircode:         req.Eircode,
			HourlyRate:      req.HourlyRate,
			YearsExperience: req.YearsExperience,
			Languages:       req.Languages,
			AgeGroups:       req.AgeGroups,
			AvailableDays:   req.AvailableDays,
		})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			}

			log.Error("failed to update profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update profile"))
			return
		}

		notifier.ProfileUpdated(r.Context(), updated)

		log.Info("profile updated", slog.String("user_id", sess.UserID))

		render.JSON(w, r, UpdateResponse{
			Response: response.OK(),
			User:     updated,
		})
	}
}
