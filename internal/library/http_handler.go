package library

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Save handles POST /books. The request body is a catalog record; only
// the fields of CatalogItem are read, anything else is ignored.
func (h *HTTPHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)

	var item CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.Save(r.Context(), userID, item)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			httpx.JSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDuplicate):
			httpx.JSONError(w, http.StatusBadRequest, "Book already saved in your library")
		default:
			log.Printf("save book failed: user_id=%s error=%v", userID, err)
			httpx.JSONError(w, http.StatusInternalServerError, "Failed to save book")
		}
		return
	}

	httpx.JSONSuccess(w, http.StatusCreated, rec, map[string]any{
		"message": "Book saved to library successfully",
	})
}

// List handles GET /books. An optional ?status= query restricts the
// returned records; the stats block always covers the whole library.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	statusFilter := r.URL.Query().Get("status")

	records, stats, err := h.service.List(r.Context(), userID, statusFilter)
	if err != nil {
		log.Printf("list books failed: user_id=%s error=%v", userID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get books")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, records, map[string]any{
		"count": len(records),
		"stats": stats,
	})
}

// Get handles GET /books/{id}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	id := r.PathValue("id")

	rec, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found in your library")
			return
		}
		log.Printf("get book failed: user_id=%s book_id=%s error=%v", userID, id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get book")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, rec, nil)
}

// Update handles PUT /books/{id}. Decoding into Update enforces the
// field whitelist; any other field in the payload never reaches the
// store.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	id := r.PathValue("id")

	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.Update(r.Context(), userID, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			httpx.JSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "Book not found in your library")
		default:
			log.Printf("update book failed: user_id=%s book_id=%s error=%v", userID, id, err)
			httpx.JSONError(w, http.StatusInternalServerError, "Failed to update book")
		}
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, rec, map[string]any{
		"message": "Book updated successfully",
	})
}

// Delete handles DELETE /books/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	id := r.PathValue("id")

	if err := h.service.Remove(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found in your library")
			return
		}
		log.Printf("delete book failed: user_id=%s book_id=%s error=%v", userID, id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to delete book")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, nil, map[string]any{
		"message": "Book deleted from library successfully",
	})
}

// StatsOverview handles GET /books/stats/overview.
func (h *HTTPHandler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)

	overview, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		log.Printf("library stats failed: user_id=%s error=%v", userID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get library statistics")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, overview, nil)
}
