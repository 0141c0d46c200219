package invoice

import (
	"time"

	"github.com/zetacorp/billing/internal/invoice"
)

type itemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type invoiceResponse struct {
	ID         string         `json:"id"`
	ClientID   string         `json:"clientId"`
	ClientName string         `json:"clientName"`
	IssueDate  time.Time      `json:"issueDate"`
	DueDate    time.Time      `json:"dueDate"`
	Items      []itemResponse `json:"items"`
	Total      float64        `json:"total"`
	Status     invoice.Status `json:"status"`
	UserID     string         `json:"userId"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]itemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = itemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return invoiceResponse{
		ID:         inv.ID,
		ClientID:   inv.ClientID,
		ClientName: inv.ClientName,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Items:      items,
		Total:      inv.Total,
		Status:     inv.Status,
		UserID:     inv.UserID,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
