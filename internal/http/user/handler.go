package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zetacorp/billing/internal/auth"
	"github.com/zetacorp/billing/internal/http/respond"
	"github.com/zetacorp/billing/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the unauthenticated endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// AuthedRoutes registers the endpoints that sit behind the bearer-token
// middleware.
func (h *Handler) AuthedRoutes(r chi.Router) {
	r.Get("/", h.current)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respond.Msg(w, http.StatusBadRequest, "Please enter all fields")
		return
	}

	token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respond.Msg(w, http.StatusBadRequest, "User already exists")
			return
		}

		slog.Error("failed to register user", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respond.Msg(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		slog.Error("failed to log in user", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	u, err := h.svc.Current(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load user", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}
