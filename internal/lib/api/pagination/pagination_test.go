package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		query string
		want  Params
	}{
		{name: "defaults", query: "", want: Params{Page: 1, Limit: 10}},
		{name: "explicit", query: "page=3&limit=25", want: Params{Page: 3, Limit: 25}},
		{name: "garbage falls back", query: "page=abc&limit=-4", want: Params{Page: 1, Limit: 10}},
		{name: "limit capped", query: "page=2&limit=5000", want: Params{Page: 2, Limit: 100}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, _ := url.ParseQuery(tc.query)
			assert.Equal(t, tc.want, ParseParams(q))
		})
	}
}

func TestNewAndShowing(t *testing.T) {
	t.Parallel()

	p := New(Params{Page: 3, Limit: 10}, 95)

	assert.Equal(t, 10, p.TotalPages)
	assert.Equal(t, "Showing 21 to 30 of 95", p.Showing())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())

	last := New(Params{Page: 10, Limit: 10}, 95)
	assert.Equal(t, "Showing 91 to 95 of 95", last.Showing())

	empty := New(Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, "Showing 0 to 0 of 0", empty.Showing())
}

func TestWindow(t *testing.T) {
	t.Parallel()

	small := New(Params{Page: 2, Limit: 10}, 50)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, small.Window(1))

	middle := New(Params{Page: 10, Limit: 10}, 200)
	assert.Equal(t, []int{1, 0, 9, 10, 11, 0, 20}, middle.Window(1))

	head := New(Params{Page: 2, Limit: 10}, 200)
	assert.Equal(t, []int{1, 2, 3, 0, 20}, head.Window(1))

	tail := New(Params{Page: 19, Limit: 10}, 200)
	assert.Equal(t, []int{1, 0, 18, 19, 20}, tail.Window(1))
}
