package recommendedChildminders

import (
	"log/slog"
	"net/http"

	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"

	"github.com/go-chi/render"
)

// recommendedCount matches the card row shown before any search.
const recommendedCount = 6

type RecommendedResponse struct {
	response.Response
	Childminders []models.User `json:"childminders"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Recommender
type Recommender interface {
	RecommendedChildminders(limit int) ([]models.User, error)
}

func New(log *slog.Logger, minders Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.childminder.recommendedChildminders.New"

		log = log.With(slog.String("op", op))

		rows, err := minders.RecommendedChildminders(recommendedCount)
		if err != nil {
			log.Error("failed to get recommended childminders", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get recommended childminders"))
			return
		}

		log.Info("recommended childminders retrieved", slog.Int("count", len(rows)))

		render.JSON(w, r, RecommendedResponse{
			Response:     response.OK(),
			Childminders: rows,
		})
	}
}
