package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is the page/limit pair parsed from a list request.
type Params struct {
	Page  int
	Limit int
}

// Pagination is the envelope returned alongside every list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ParseParams reads page/limit query parameters, applying defaults and
// the limit cap. Invalid or missing values fall back to defaults.
func ParseParams(q url.Values) Params {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func New(p Params, total int64) Pagination {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))

	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Showing renders the "Showing X to Y of Z" summary line.
func (p Pagination) Showing() string {
	if p.Total == 0 {
		return "Showing 0 to 0 of 0"
	}

	from := (p.Page-1)*p.Limit + 1
	to := p.Page * p.Limit
	if int64(to) > p.Total {
		to = int(p.Total)
	}

	return fmt.Sprintf("Showing %d to %d of %d", from, to, p.Total)
}

// Window returns the page numbers to render as buttons, with 0 marking
// an ellipsis gap. The first and last pages are always present; radius
// pages are kept on each side of the current page.
func (p Pagination) Window(radius int) []int {
	if p.TotalPages <= 2*radius+5 {
		pages := make([]int, 0, p.TotalPages)
		for i := 1; i <= p.TotalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	var pages []int

	pages = append(pages, 1)

	lo := p.Page - radius
	hi := p.Page + radius
	if lo < 2 {
		lo = 2
	}
	if hi > p.TotalPages-1 {
		hi = p.TotalPages - 1
	}

	if lo > 2 {
		pages = append(pages, 0)
	}
	for i := lo; i <= hi; i++ {
		pages = append(pages, i)
	}
	if hi < p.TotalPages-1 {
		pages = append(pages, 0)
	}

	return append(pages, p.TotalPages)
}
