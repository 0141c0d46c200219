package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zetacorp/billing/internal/auth"
	"github.com/zetacorp/billing/internal/http/respond"
	"github.com/zetacorp/billing/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Get("/{id}/download", h.download)
	r.Post("/{id}/send", h.send)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	invoices, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list invoices", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	inv, err := h.svc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respond.Msg(w, http.StatusNotFound, "Invoice not found")
			return
		}

		slog.Error("failed to get invoice", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

// date accepts both RFC 3339 timestamps and bare YYYY-MM-DD dates, which is
// what the date inputs on the frontend submit.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("invalid date %q", s)
}

type itemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type createInvoiceRequest struct {
	ClientID string        `json:"clientId"`
	DueDate  date          `json:"dueDate"`
	Items    []itemRequest `json:"items"`
	Total    float64       `json:"total"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]invoice.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = invoice.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	inv, err := h.svc.Create(r.Context(), userID, invoice.CreateParams{
		ClientID: req.ClientID,
		DueDate:  req.DueDate.Time,
		Items:    items,
		Total:    req.Total,
	})
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respond.Msg(w, http.StatusNotFound, "Client not found for this user")
			return
		}

		slog.Error("failed to create invoice", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	id := chi.URLParam(r, "id")

	pdf, err := h.svc.DownloadPDF(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respond.Msg(w, http.StatusNotFound, "Invoice not found")
			return
		}

		slog.Error("failed to render invoice pdf", "error", err)
		respond.Msg(w, http.StatusInternalServerError, "Server Error")

		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+id+".pdf"))

	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write pdf response", "error", err)
	}
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	message, err := h.svc.Send(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrNotFound):
			respond.Msg(w, http.StatusNotFound, "Invoice not found")
		case errors.Is(err, invoice.ErrClientGone):
			respond.Message(w, http.StatusBadRequest, "Client is missing or has no email address")
		case errors.Is(err, invoice.ErrDispatch):
			slog.Error("failed to send invoice email", "error", err)
			respond.Message(w, http.StatusInternalServerError, "Failed to send email")
		default:
			slog.Error("failed to send invoice", "error", err)
			respond.Message(w, http.StatusInternalServerError, "Failed to send email")
		}

		return
	}

	respond.Message(w, http.StatusOK, message)
}
