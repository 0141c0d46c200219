package invoice_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zetacorp/billing/internal/auth"
	"github.com/zetacorp/billing/internal/client"
	invoiceHandler "github.com/zetacorp/billing/internal/http/invoice"
	"github.com/zetacorp/billing/internal/invoice"
)

type handlerMocks struct {
	repo    *invoice.MockRepository
	clients *invoice.MockClientDirectory
	mailer  *invoice.MockMailer
}

// newServer mounts the handler behind a stub identity middleware that
// authenticates every request as userID.
func newServer(t *testing.T, userID string) (*httptest.Server, handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := handlerMocks{
		repo:    invoice.NewMockRepository(ctrl),
		clients: invoice.NewMockClientDirectory(ctrl),
		mailer:  invoice.NewMockMailer(ctrl),
	}

	svc := invoice.NewService(m.repo, m.clients, m.mailer, "Your Agency")
	h := invoiceHandler.NewHandler(svc)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	})
	router.Route("/api/invoices", h.Routes)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, m
}

func storedInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:         "i1",
		ClientID:   "c1",
		ClientName: "Acme",
		IssueDate:  time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Items:      []invoice.Item{{Description: "Design", Quantity: 2, UnitPrice: 50}},
		Total:      100,
		Status:     invoice.StatusDraft,
		UserID:     "u1",
	}
}

func TestHandler_Get(t *testing.T) {
	srv, m := newServer(t, "u1")

	m.repo.EXPECT().GetInvoice(gomock.Any(), "i1").Return(storedInvoice(), nil)

	resp, err := http.Get(srv.URL + "/api/invoices/i1")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "i1", body["id"])
	assert.Equal(t, "c1", body["clientId"])
	assert.Equal(t, "Acme", body["clientName"])
	assert.Equal(t, "Draft", body["status"])
	assert.Equal(t, 100.0, body["total"])
}

func TestHandler_Get_NotFound(t *testing.T) {
	srv, m := newServer(t, "u1")

	m.repo.EXPECT().GetInvoice(gomock.Any(), "missing").Return(nil, invoice.ErrNotFound)

	resp, err := http.Get(srv.URL + "/api/invoices/missing")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invoice not found", body["msg"])
}

func TestHandler_Get_ForeignOwner(t *testing.T) {
	srv, m := newServer(t, "u2")

	m.repo.EXPECT().GetInvoice(gomock.Any(), "i1").Return(storedInvoice(), nil)

	resp, err := http.Get(srv.URL + "/api/invoices/i1")
	require.NoError(t, err)

	defer resp.Body.Close()

	// Foreign ownership is indistinguishable from absence.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Create(t *testing.T) {
	srv, m := newServer(t, "u1")

	acme := &client.Client{ID: "c1", Name: "Acme", Email: "a@acme.test", UserID: "u1"}

	m.clients.EXPECT().GetClient(gomock.Any(), "c1").Return(acme, nil)
	m.repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, inv *invoice.Invoice) error {
			inv.ID = "i1"
			return nil
		})

	payload := `{
		"clientId": "c1",
		"dueDate": "2024-01-01",
		"items": [{"description": "Design", "quantity": 2, "unitPrice": 50}],
		"total": 100
	}`

	resp, err := http.Post(srv.URL+"/api/invoices", "application/json", strings.NewReader(payload))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "i1", body["id"])
	assert.Equal(t, "Acme", body["clientName"])
	assert.Equal(t, "Draft", body["status"])
}

func TestHandler_Create_UnknownClient(t *testing.T) {
	srv, m := newServer(t, "u1")

	m.clients.EXPECT().GetClient(gomock.Any(), "ghost").Return(nil, client.ErrNotFound)

	payload := `{"clientId": "ghost", "dueDate": "2024-01-01", "items": [], "total": 0}`

	resp, err := http.Post(srv.URL+"/api/invoices", "application/json", strings.NewReader(payload))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Client not found for this user", body["msg"])
}

func TestHandler_Download(t *testing.T) {
	srv, m := newServer(t, "u1")

	m.repo.EXPECT().GetInvoice(gomock.Any(), "i1").Return(storedInvoice(), nil)

	resp, err := http.Get(srv.URL + "/api/invoices/i1/download")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-i1.pdf"`, resp.Header.Get("Content-Disposition"))
}

func TestHandler_Send(t *testing.T) {
	srv, m := newServer(t, "u1")

	acme := &client.Client{ID: "c1", Name: "Acme", Email: "a@acme.test", UserID: "u1"}

	m.repo.EXPECT().GetInvoice(gomock.Any(), "i1").Return(storedInvoice(), nil)
	m.clients.EXPECT().GetClient(gomock.Any(), "c1").Return(acme, nil)
	m.mailer.EXPECT().Send(gomock.Any(), "a@acme.test", gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().MarkSent(gomock.Any(), "i1").Return(true, nil)

	resp, err := http.Post(srv.URL+"/api/invoices/i1/send", "application/json", nil)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Email sent successfully", body["message"])
}

func TestHandler_Send_DispatchFailure(t *testing.T) {
	srv, m := newServer(t, "u1")

	acme := &client.Client{ID: "c1", Name: "Acme", Email: "a@acme.test", UserID: "u1"}

	m.repo.EXPECT().GetInvoice(gomock.Any(), "i1").Return(storedInvoice(), nil)
	m.clients.EXPECT().GetClient(gomock.Any(), "c1").Return(acme, nil)
	m.mailer.EXPECT().
		Send(gomock.Any(), "a@acme.test", gomock.Any(), gomock.Any()).
		Return(errors.New("554 relay access denied"))

	resp, err := http.Post(srv.URL+"/api/invoices/i1/send", "application/json", nil)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The relay error is logged, never surfaced to the caller.
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to send email", body["message"])
}

func TestHandler_Send_ClientGone(t *testing.T) {
	srv, m := newServer(t, "u1")

	m.repo.EXPECT().GetInvoice(gomock.Any(), "i1").Return(storedInvoice(), nil)
	m.clients.EXPECT().GetClient(gomock.Any(), "c1").Return(nil, client.ErrNotFound)

	resp, err := http.Post(srv.URL+"/api/invoices/i1/send", "application/json", nil)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
