package subscribe

import (
	"errors"
	"log/slog"
	"net/http"

	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type SubscribeRequest struct {
	CardToken string `json:"card_token" validate:"required"`
}

type SubscribeResponse struct {
	response.Response
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Subscriber
type Subscriber interface {
	Subscribe(email, name, cardToken string) (string, string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SubscriptionStore
type SubscriptionStore interface {
	UpdateSubscriptionStatus(userID string, status models.SubscriptionStatus) error
	RecordActivity(userID, action, detail string) error
}

func New(log *slog.Logger, payments Subscriber, store SubscriptionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.subscribe.New"

		log = log.With(slog.String("op", op))

		sess := mwauth.FromContext(r.Context())

		if sess.SubscriptionStatus == models.SubscriptionActive {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("subscription is already active"))
			return
		}

		var req SubscribeRequest

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

		customerID, chargeID, err := payments.Subscribe(sess.Email, sess.Name, req.CardToken)
		if err != nil {
			log.Error("failed to process subscription payment", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment was not accepted"))
			return
		}

		if err = store.UpdateSubscriptionStatus(sess.UserID, models.SubscriptionActive); err != nil {
			// Payment went through but the status write failed. Log loudly;
			// the charge id is the recovery handle.
			log.Error("failed to activate subscription after payment",
				slog.String("charge_id", chargeID), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to activate subscription"))
			return
		}

		if err = store.RecordActivity(sess.UserID, "subscription_activated", "charge "+chargeID); err != nil {
			log.Error("failed to record activity", sl.Err(err))
		}

		log.Info("subscription activated",
			slog.String("user_id", sess.UserID),
			slog.String("customer_id", customerID),
		)

		render.JSON(w, r, SubscribeResponse{
			Response:           response.OK(),
			SubscriptionStatus: models.SubscriptionActive,
		})
	}
}
