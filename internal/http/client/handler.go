package client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zetacorp/billing/internal/auth"
	"github.com/zetacorp/billing/internal/client"
	"github.com/zetacorp/billing/internal/http/respond"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	clients, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(clients))
}

type clientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, client.ErrNameRequired) {
			respond.Msg(w, http.StatusBadRequest, "Name is required")
			return
		}

		slog.Error("failed to create client", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			respond.Msg(w, http.StatusNotFound, "Client not found")
		case errors.Is(err, client.ErrForbidden):
			respond.Msg(w, http.StatusUnauthorized, "Not authorized")
		default:
			slog.Error("failed to update client", "error", err)
			respond.Msg(w, http.StatusInternalServerError, "Server Error")
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			respond.Msg(w, http.StatusNotFound, "Client not found")
		case errors.Is(err, client.ErrForbidden):
			respond.Msg(w, http.StatusUnauthorized, "Not authorized")
		default:
			slog.Error("failed to delete client", "error", err)
			respond.Msg(w, http.StatusInternalServerError, "Server Error")
		}

		return
	}

	respond.Msg(w, http.StatusOK, "Client removed")
}
