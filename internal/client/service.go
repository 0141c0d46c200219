package client

import (
	"context"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id string) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context, userID string) ([]*Client, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's clients ordered by name.
func (s *Service) List(ctx context.Context, userID string) ([]*Client, error) {
	return s.repo.ListClients(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID, name, email string) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	c := &Client{
		Name:   name,
		Email:  email,
		UserID: userID,
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update replaces the client's name and email. Unlike the invoice read
// paths, an owner mismatch is reported as ErrForbidden rather than being
// folded into ErrNotFound.
func (s *Service) Update(ctx context.Context, userID, id, name, email string) (*Client, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.UserID != userID {
		return nil, ErrForbidden
	}

	c.Name = name
	c.Email = email

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the client record. Invoices keep their name snapshot, so
// no cascade happens here.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return err
	}

	if c.UserID != userID {
		return ErrForbidden
	}

	return s.repo.DeleteClient(ctx, id)
}
