package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/zetacorp/billing/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo   Repository
	tokens *auth.Manager
}

func NewService(repo Repository, tokens *auth.Manager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account and returns a signed token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailTaken
	}

	if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return "", err
	}

	return s.tokens.Issue(u.ID)
}

// Login verifies the email/password pair and returns a signed token.
// A missing account and a wrong password report identically.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID)
}

func (s *Service) Current(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUser(ctx, id)
}
