package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"libraryapi/internal/httpx"
	"libraryapi/internal/platform/crypto"
)

const tokenTTL = 7 * 24 * time.Hour

type HTTPHandler struct {
	service   *Service
	jwtSecret string
}

func NewHTTPHandler(service *Service, jwtSecret string) *HTTPHandler {
	return &HTTPHandler{service: service, jwtSecret: jwtSecret}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register.
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if messages := httpx.ValidateStruct(req); len(messages) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, strings.Join(messages, ", "))
		return
	}

	u, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("register failed: email=%s error=%v", req.Email, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := crypto.GenerateToken(h.jwtSecret, u.ID, tokenTTL)
	if err != nil {
		log.Printf("token generation failed: user_id=%s error=%v", u.ID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	httpx.JSONSuccess(w, http.StatusCreated, u, map[string]any{
		"token": token,
	})
}

// Login handles POST /auth/login.
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if messages := httpx.ValidateStruct(req); len(messages) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, strings.Join(messages, ", "))
		return
	}

	u, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("login failed: email=%s error=%v", req.Email, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := crypto.GenerateToken(h.jwtSecret, u.ID, tokenTTL)
	if err != nil {
		log.Printf("token generation failed: user_id=%s error=%v", u.ID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, u, map[string]any{
		"token": token,
	})
}

// Me handles GET /me.
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("get current user failed: user_id=%s error=%v", userID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	httpx.JSONSuccess(w, http.StatusOK, u, nil)
}
