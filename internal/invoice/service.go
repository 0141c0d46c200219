package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zetacorp/billing/internal/client"
	"github.com/zetacorp/billing/internal/render"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context, userID string) ([]*Invoice, error)

	// MarkSent flips the invoice from Draft to Sent and reports whether the
	// swap happened. A false return means another sender got there first.
	MarkSent(ctx context.Context, id string) (bool, error)
}

// ClientDirectory looks up client records; the invoice service never writes
// them.
type ClientDirectory interface {
	GetClient(ctx context.Context, id string) (*client.Client, error)
}

// Mailer hands a composed message to the mail relay. One call, one
// synchronous SMTP conversation, no retries.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Service struct {
	repo    Repository
	clients ClientDirectory
	mailer  Mailer
	sender  string
}

func NewService(repo Repository, clients ClientDirectory, mailer Mailer, senderName string) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		mailer:  mailer,
		sender:  senderName,
	}
}

type CreateParams struct {
	ClientID string
	DueDate  time.Time
	Items    []Item
	Total    float64
}

// List returns the user's invoices, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, userID)
}

// Get returns the invoice when it exists and belongs to userID. A foreign
// owner reports the same ErrNotFound as a missing record, so callers cannot
// probe for other users' invoices.
func (s *Service) Get(ctx context.Context, userID, id string) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.UserID != userID {
		return nil, ErrNotFound
	}

	return inv, nil
}

// Create issues a draft invoice against one of the user's clients,
// snapshotting the client's name as of now.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Invoice, error) {
	c, err := s.clients.GetClient(ctx, params.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	if c.UserID != userID {
		return nil, ErrNotFound
	}

	inv := &Invoice{
		ClientID:   c.ID,
		ClientName: c.Name,
		IssueDate:  time.Now().UTC(),
		DueDate:    params.DueDate,
		Items:      params.Items,
		Total:      params.Total,
		Status:     StatusDraft,
		UserID:     userID,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Send emails the invoice to its client and flips the status to Sent. The
// client's current name and address are looked up at send time, so the email
// greets whatever the client is called today even though the stored invoice
// keeps the creation-time snapshot. The status is only persisted after the
// relay accepts; a dispatch failure leaves the invoice untouched.
func (s *Service) Send(ctx context.Context, userID, id string) (string, error) {
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}

	c, err := s.clients.GetClient(ctx, inv.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return "", ErrClientGone
		}

		return "", err
	}

	if c.Email == "" {
		return "", ErrClientGone
	}

	body := render.EmailBody(c.Name, inv.Total)
	subject := "Invoice from " + s.sender

	if err := s.mailer.Send(ctx, c.Email, subject, body); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	swapped, err := s.repo.MarkSent(ctx, id)
	if err != nil {
		return "", err
	}

	if !swapped {
		// A concurrent send won the status update; the relay accepted both.
		slog.Warn("invoice already marked sent", "invoice_id", id)
	}

	return "Email sent successfully", nil
}

// DownloadPDF renders the invoice as a PDF from its stored snapshot fields.
// It never touches the live client record and never mutates state.
func (s *Service) DownloadPDF(ctx context.Context, userID, id string) ([]byte, error) {
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	lines := make([]render.Line, len(inv.Items))
	for i, item := range inv.Items {
		lines[i] = render.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return render.PDF(render.Document{
		InvoiceID:  inv.ID,
		ClientName: inv.ClientName,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Lines:      lines,
		Total:      inv.Total,
	})
}
