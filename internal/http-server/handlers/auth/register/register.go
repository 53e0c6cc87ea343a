package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
	Role            string  `json:"role" validate:"required,oneof=parent childminder"`
	Phone           string  `json:"phone"`
	StreetAddress   string  `json:"street_address"`
	City            string  `json:"city"`
	County          string  `json:"county"`
	Eircode         string  `json:"eircode"`
	HourlyRate      float64 `json:"hourly_rate"`
	YearsExperience int     `json:"years_experience"`
	Languages       string  `json:"languages"`
	AgeGroups       string  `json:"age_groups"`
	AvailableDays   string  `json:"available_days"`
}

type RegisterResponse struct {
	response.Response
	UserID string `json:"user_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserCreator
type UserCreator interface {
	CreateUser(u *models.User, passwordHash string) (string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=WelcomeSender
type WelcomeSender interface {
	Welcome(ctx context.Context, u *models.User)
}

func New(log *slog.Logger, users UserCreator, notifier WelcomeSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

		log = log.With(slog.String("op", op))

		var req RegisterRequest

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

		if req.Password != req.ConfirmPassword {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("passwords do not match"))
			return
		}

		if msg := validateRoleFields(&req); msg != "" {
			log.Info("registration rejected", slog.String("reason", msg))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msg))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register"))
			return
		}

		user := &models.User{
			Name:            req.Name,
			Email:           req.Email,
			Role:            models.Role(req.Role),
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
		}

		id, err := users.CreateUser(user, string(hash))
		if err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("email already registered"))
				return
			}

			log.Error("failed to create user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register"))
			return
		}

		user.ID = id
		notifier.Welcome(r.Context(), user)

		log.Info("user registered", slog.String("user_id", id), slog.String("role", req.Role))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, RegisterResponse{
			Response: response.OK(),
			UserID:   id,
		})
	}
}

// validateRoleFields enforces the role-specific registration rules: a
// childminder needs full contact details and a rate; a parent's address
// is all-or-none.
func validateRoleFields(req *RegisterRequest) string {
	if req.Role == string(models.RoleChildminder) {
		if req.Phone == "" || req.StreetAddress == "" || req.City == "" || req.County == "" || req.HourlyRate <= 0 {
			return "please fill in all required fields"
		}
		return ""
	}

	any := req.StreetAddress != "" || req.City != "" || req.County != ""
	all := req.StreetAddress != "" && req.City != "" && req.County != ""
	if any && !all {
		return "complete all address fields or leave them all empty"
	}

	return ""
}
