package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /search?q=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Please provide a search query")
		return
	}

	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

	result := h.service.Search(r.Context(), query, maxResults)

	httpx.JSONSuccess(w, http.StatusOK, result.Items, map[string]any{
		"query":        query,
		"count":        len(result.Items),
		"totalResults": result.TotalResults,
		"source":       result.Source,
	})
}

// Detail handles GET /search/{id}
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, source, err := h.service.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get book details")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, item, map[string]any{
		"source": source,
	})
}
