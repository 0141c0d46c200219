package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/zetacorp/billing/internal/invoice"
)

const table = "invoice"

type Store struct {
	db *surrealdb.DB
}

func New(db *surrealdb.DB) *Store {
	return &Store{db: db}
}

type itemRecord struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type invoiceRecord struct {
	ID         *models.RecordID      `json:"id,omitempty"`
	ClientID   string                `json:"client_id"`
	ClientName string                `json:"client_name"`
	IssueDate  models.CustomDateTime `json:"issue_date"`
	DueDate    models.CustomDateTime `json:"due_date"`
	Items      []itemRecord          `json:"items"`
	Total      float64               `json:"total"`
	Status     string                `json:"status"`
	UserID     string                `json:"user_id"`
}

func (r *invoiceRecord) toInvoice() *invoice.Invoice {
	items := make([]invoice.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = invoice.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return &invoice.Invoice{
		ID:         recordID(r.ID),
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		IssueDate:  r.IssueDate.Time,
		DueDate:    r.DueDate.Time,
		Items:      items,
		Total:      r.Total,
		Status:     invoice.Status(r.Status),
		UserID:     r.UserID,
	}
}

func recordID(id *models.RecordID) string {
	if id == nil {
		return ""
	}

	if s, ok := id.ID.(string); ok {
		return s
	}

	return fmt.Sprint(id.ID)
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	id := uuid.New().String()

	items := make([]itemRecord, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = itemRecord{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	results, err := surrealdb.Query[[]invoiceRecord](ctx, s.db,
		`CREATE type::thing($tb, $id) CONTENT $content`,
		map[string]any{
			"tb": table,
			"id": id,
			"content": map[string]any{
				"client_id":   inv.ClientID,
				"client_name": inv.ClientName,
				"issue_date":  models.CustomDateTime{Time: inv.IssueDate},
				"due_date":    models.CustomDateTime{Time: inv.DueDate},
				"items":       items,
				"total":       inv.Total,
				"status":      string(inv.Status),
				"user_id":     inv.UserID,
			},
		})
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	rows := (*results)[0].Result
	if len(rows) == 0 {
		return fmt.Errorf("creating invoice: no record returned")
	}

	inv.ID = recordID(rows[0].ID)

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	rec, err := surrealdb.Select[invoiceRecord](ctx, s.db, models.NewRecordID(table, id))
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if rec == nil || rec.ID == nil {
		return nil, invoice.ErrNotFound
	}

	return rec.toInvoice(), nil
}

func (s *Store) ListInvoices(ctx context.Context, userID string) ([]*invoice.Invoice, error) {
	results, err := surrealdb.Query[[]invoiceRecord](ctx, s.db,
		`SELECT * FROM type::table($tb) WHERE user_id = $user_id ORDER BY issue_date DESC`,
		map[string]any{
			"tb":      table,
			"user_id": userID,
		})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	rows := (*results)[0].Result

	invoices := make([]*invoice.Invoice, len(rows))
	for i := range rows {
		invoices[i] = rows[i].toInvoice()
	}

	return invoices, nil
}

// MarkSent is a compare-and-swap on the status field: concurrent senders
// race on the WHERE clause and only one of them observes a swap.
func (s *Store) MarkSent(ctx context.Context, id string) (bool, error) {
	results, err := surrealdb.Query[[]invoiceRecord](ctx, s.db,
		`UPDATE type::thing($tb, $id) SET status = $to WHERE status = $from RETURN AFTER`,
		map[string]any{
			"tb":   table,
			"id":   id,
			"to":   string(invoice.StatusSent),
			"from": string(invoice.StatusDraft),
		})
	if err != nil {
		return false, fmt.Errorf("marking invoice sent: %w", err)
	}

	return len((*results)[0].Result) > 0, nil
}
