package scholar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
  "total": 3,
  "offset": 0,
  "data": [
    {"paperId": "a", "title": "Automatic Service Composition", "authors": [{"name": "D. Berardi"}, {"name": "M. Mecella"}], "year": 2003, "venue": "ICSOC", "abstract": "Roman model."},
    {"paperId": "b", "title": "Composition of Services", "authors": [], "year": null, "venue": "", "abstract": null},
    {"paperId": "c", "title": "Third", "authors": [{"name": "X"}], "year": 2010, "venue": "Web", "abstract": "c"}
  ]
}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Search(t *testing.T) {
	var gotQuery, gotLimit, gotFields, gotKey string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/v1/paper/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotLimit = r.URL.Query().Get("limit")
		gotFields = r.URL.Query().Get("fields")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})

	c := NewClient(srv.URL+"/", WithAPIKey("secret"), WithLimit(2))
	defer c.Close()

	papers, err := c.Search(context.Background(), "  service composition roman model ")
	require.NoError(t, err)

	assert.Equal(t, "service composition roman model", gotQuery)
	assert.Equal(t, "2", gotLimit)
	assert.Equal(t, "title,authors,year,venue,abstract", gotFields)
	assert.Equal(t, "secret", gotKey)

	expected := []Paper{
		{
			Title:    "Automatic Service Composition",
			Authors:  []string{"D. Berardi", "M. Mecella"},
			Year:     "2003",
			Venue:    "ICSOC",
			Abstract: "Roman model.",
		},
		{
			Title:    "Composition of Services",
			Year:     Unknown,
			Venue:    Unknown,
			Abstract: Unknown,
		},
	}
	assert.Equal(t, expected, papers)
}

func TestClient_Search_Errors(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1")
		_, err := c.Search(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("api error message", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message": "Too Many Requests"}`))
		})

		_, err := NewClient(srv.URL).Search(context.Background(), "q")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAPI))
		assert.Contains(t, err.Error(), "429")
		assert.Contains(t, err.Error(), "Too Many Requests")
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(searchBody))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(srv.URL).Search(ctx, "q")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_Defaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultLimit, c.Limit())

	c = NewClient("", WithLimit(0))
	assert.Equal(t, DefaultLimit, c.Limit())
}

func TestPaper_Citation(t *testing.T) {
	tests := []struct {
		name     string
		input    Paper
		expected string
	}{
		{
			name:     "all fields",
			input:    Paper{Title: "Roman Model", Authors: []string{"A", "B"}, Year: "2003", Venue: "ICSOC"},
			expected: "Roman Model by A, B (2003) in ICSOC",
		},
		{
			name:     "NA year and empty venue",
			input:    Paper{Title: "T", Authors: []string{"A"}, Year: "NA"},
			expected: "T by A",
		},
		{
			name:     "unknown is kept",
			input:    Paper{Title: "T", Year: Unknown, Venue: Unknown},
			expected: "T by  (Unknown) in Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Citation())
		})
	}
}
