package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"libraryapi/internal/platform/googlebooks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(handler http.HandlerFunc) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := googlebooks.NewClient("test-key", "test-agent", 100, 0)
	client.SetBaseURL(server.URL)
	return NewService(client), server
}

const volumesJSON = `{
	"totalItems": 42,
	"items": [
		{
			"id": "abc123",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"pageCount": 412,
				"imageLinks": {"thumbnail": "http://books.google.com/thumb.jpg"},
				"industryIdentifiers": [
					{"type": "ISBN_13", "identifier": "9780441013593"}
				]
			}
		}
	]
}`

func TestService_Search(t *testing.T) {
	t.Run("api answers", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(volumesJSON))
		})
		defer server.Close()

		result := svc.Search(context.Background(), "dune", 20)

		assert.Equal(t, SourceAPI, result.Source)
		assert.Equal(t, 42, result.TotalResults)
		require.Len(t, result.Items, 1)

		item := result.Items[0]
		assert.Equal(t, "abc123", item.GoogleBooksID)
		assert.Equal(t, "Dune", item.Title)
		assert.Equal(t, "https://books.google.com/thumb.jpg", item.Thumbnail)
		assert.Equal(t, "9780441013593", item.ISBN13)
	})

	t.Run("keyed failure falls back to keyless", func(t *testing.T) {
		calls := 0
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if r.URL.Query().Get("key") != "" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(volumesJSON))
		})
		defer server.Close()

		result := svc.Search(context.Background(), "dune", 20)

		assert.Equal(t, SourceAPINoKey, result.Source)
		assert.Equal(t, 2, calls)
		assert.Len(t, result.Items, 1)
	})

	t.Run("total outage serves fallback data", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		defer server.Close()

		result := svc.Search(context.Background(), "harry potter", 20)

		assert.Equal(t, SourceFallback, result.Source)
		assert.NotEmpty(t, result.Items)
		for _, item := range result.Items {
			assert.Contains(t, item.Title, "Harry Potter")
		}
	})

	t.Run("fallback filters by query", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		defer server.Close()

		result := svc.Search(context.Background(), "chamber of secrets", 20)

		assert.Equal(t, SourceFallback, result.Source)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "yl4dILkcqmQC", result.Items[0].ID)
	})
}

func TestService_Detail(t *testing.T) {
	t.Run("api answers", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "abc123", "volumeInfo": {"title": "Dune"}}`))
		})
		defer server.Close()

		item, source, err := svc.Detail(context.Background(), "abc123")
		require.NoError(t, err)

		assert.Equal(t, SourceAPI, source)
		assert.Equal(t, "Dune", item.Title)
	})

	t.Run("outage with known fallback id", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		defer server.Close()

		item, source, err := svc.Detail(context.Background(), "wuTcjwEACAAJ")
		require.NoError(t, err)

		assert.Equal(t, SourceFallback, source)
		assert.Equal(t, "Harry Potter and the Philosopher's Stone", item.Title)
	})

	t.Run("outage with unknown id", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		defer server.Close()

		_, _, err := svc.Detail(context.Background(), "no-such-volume")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNormalize_Defaults(t *testing.T) {
	item := Normalize(googlebooks.Volume{ID: "x1"}, true)

	assert.Equal(t, "Unknown Title", item.Title)
	assert.Equal(t, []string{"Unknown Author"}, item.Authors)
	assert.Equal(t, "No description available", item.Description)
	assert.Equal(t, "Unknown Publisher", item.Publisher)
	assert.Equal(t, "en", item.Language)
	assert.NotEmpty(t, item.Thumbnail)
	assert.NotEmpty(t, item.SmallThumbnail)
	assert.NotNil(t, item.Categories)
}

func TestNormalize_TruncatesLongDescriptions(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}

	v := googlebooks.Volume{ID: "x1"}
	v.VolumeInfo.Title = "T"
	v.VolumeInfo.Description = string(long)

	truncated := Normalize(v, true)
	assert.Len(t, truncated.Description, maxDescriptionLen+3)

	full := Normalize(v, false)
	assert.Len(t, full.Description, 500)
}

func TestNormalize_TruncationKeepsRuneBoundaries(t *testing.T) {
	// A two-byte rune straddles the cut position; the cut must back off
	// instead of splitting it.
	desc := strings.Repeat("a", maxDescriptionLen-1) + "é" + strings.Repeat("b", 100)

	v := googlebooks.Volume{ID: "x1"}
	v.VolumeInfo.Title = "T"
	v.VolumeInfo.Description = desc

	item := Normalize(v, true)

	assert.True(t, utf8.ValidString(item.Description))
	assert.Equal(t, strings.Repeat("a", maxDescriptionLen-1)+"...", item.Description)
}
