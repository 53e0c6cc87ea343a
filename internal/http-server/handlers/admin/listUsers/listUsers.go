package listUsers

import (
	"log/slog"
	"net/http"

	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/lib/api/response"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/storage/postgres"

	"github.com/go-chi/render"
)

type UsersResponse struct {
	response.Response
	Users      []models.User         `json:"users"`
	Pagination pagination.Pagination `json:"pagination"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserLister
type UserLister interface {
	ListUsers(f postgres.UserFilter) ([]models.User, int64, error)
}

func New(log *slog.Logger, users UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.listUsers.New"

		log = log.With(slog.String("op", op))

		q := r.URL.Query()

		f := postgres.UserFilter{
			Role:   q.Get("role"),
			Search: q.Get("search"),
			Params: pagination.ParseParams(q),
		}

		rows, total, err := users.ListUsers(f)
		if err != nil {
			log.Error("failed to list users", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list users"))
			return
		}

		log.Info("users listed", slog.Int("count", len(rows)), slog.Int64("total", total))

		render.JSON(w, r, UsersResponse{
			Response:   response.OK(),
			Users:      rows,
			Pagination: pagination.New(f.Params, total),
		})
	}
}
