package contact

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

type submitReq struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Submit handles POST /contact (public).
func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if messages := httpx.ValidateStruct(req); len(messages) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, strings.Join(messages, ", "))
		return
	}

	m := Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.repo.Insert(r.Context(), &m); err != nil {
		log.Printf("contact submit failed: error=%v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	httpx.JSONSuccess(w, http.StatusCreated, m, map[string]any{
		"message": "Your message has been sent successfully!",
	})
}

// List handles GET /contact (protected).
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.repo.ListAll(r.Context())
	if err != nil {
		log.Printf("contact list failed: error=%v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get contacts")
		return
	}
	if messages == nil {
		messages = []Message{}
	}

	httpx.JSONSuccess(w, http.StatusOK, messages, map[string]any{
		"count": len(messages),
	})
}

// Stats handles GET /contact/stats (protected).
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Count(r.Context())
	if err != nil {
		log.Printf("contact stats failed: error=%v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get contact statistics")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, stats, nil)
}
