package invoice

import (
	"errors"
	"time"
)

// Status is the lifecycle state of an invoice. There are exactly two: an
// invoice starts as a draft and becomes sent once the mail relay accepts it.
type Status string

const (
	StatusDraft Status = "Draft"
	StatusSent  Status = "Sent"
)

var (
	ErrNotFound   = errors.New("invoice not found")
	ErrClientGone = errors.New("client is missing or has no email address")
	ErrDispatch   = errors.New("failed to send email")
)

// Item is a single invoice line.
type Item struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Invoice is a bill issued to a client. ClientName is a snapshot of the
// client's name at creation time and is never refreshed; ClientID may point
// at a client that has since been deleted. Total is whatever the caller
// supplied and is authoritative even when it disagrees with the item sum.
type Invoice struct {
	ID         string
	ClientID   string
	ClientName string
	IssueDate  time.Time
	DueDate    time.Time
	Items      []Item
	Total      float64
	Status     Status
	UserID     string
}
