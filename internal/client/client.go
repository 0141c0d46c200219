package client

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("client not found")
	ErrForbidden    = errors.New("client owned by another user")
	ErrNameRequired = errors.New("client name is required")
)

// Client is a billable customer. UserID is the owning account and never
// changes after creation.
type Client struct {
	ID        string
	Name      string
	Email     string
	UserID    string
	CreatedAt time.Time
}
