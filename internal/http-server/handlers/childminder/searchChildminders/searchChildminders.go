package searchChildminders

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage/postgres"

	"github.com/go-chi/render"
)

type SearchResponse struct {
	response.Response
	Childminders []models.User         `json:"childminders"`
	Pagination   pagination.Pagination `json:"pagination"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ChildminderSearcher
type ChildminderSearcher interface {
	SearchChildminders(f postgres.ChildminderFilter) ([]models.User, int64, error)
}

func New(log *slog.Logger, minders ChildminderSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.childminder.searchChildminders.New"

		log = log.With(slog.String("op", op))

		q := r.URL.Query()

		f := postgres.ChildminderFilter{
			Location:      q.Get("location"),
			DayOfWeek:     q.Get("day"),
			MinRating:     queryFloat(q, "min_rating"),
			AgeGroup:      q.Get("age_group"),
			Language:      q.Get("language"),
			MinRate:       queryFloat(q, "min_rate"),
			MaxRate:       queryFloat(q, "max_rate"),
			MinExperience: queryInt(q, "min_experience"),
			GardaVetted:   q.Get("garda_vetted") == "true",
			TuslaReg:      q.Get("tusla_registered") == "true",
			FirstAid:      q.Get("first_aid_cert") == "true",
			Sort:          q.Get("sort"),
			Order:         q.Get("order"),
			Params:        pagination.ParseParams(q),
		}

		rows, total, err := minders.SearchChildminders(f)
		if err != nil {
			log.Error("failed to search childminders", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to search childminders"))
			return
		}

		log.Info("childminders searched", slog.Int("count", len(rows)), slog.Int64("total", total))

		render.JSON(w, r, SearchResponse{
			Response:     response.OK(),
			Childminders: rows,
			Pagination:   pagination.New(f.Params, total),
		})
	}
}

func queryFloat(q url.Values, key string) float64 {
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(q url.Values, key string) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return v
}
