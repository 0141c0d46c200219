package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/zetacorp/billing/internal/user"
)

const table = "user"

type Store struct {
	db *surrealdb.DB
}

func New(db *surrealdb.DB) *Store {
	return &Store{db: db}
}

type userRecord struct {
	ID           *models.RecordID      `json:"id,omitempty"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	PasswordHash string                `json:"password_hash"`
	CreatedAt    models.CustomDateTime `json:"created_at"`
}

func (r *userRecord) toUser() *user.User {
	return &user.User{
		ID:           recordID(r.ID),
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
	}
}

// recordID unwraps the bare id part of a SurrealDB record id.
func recordID(id *models.RecordID) string {
	if id == nil {
		return ""
	}

	if s, ok := id.ID.(string); ok {
		return s
	}

	return fmt.Sprint(id.ID)
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	id := uuid.New().String()

	results, err := surrealdb.Query[[]userRecord](ctx, s.db,
		`CREATE type::thing($tb, $id) CONTENT $content`,
		map[string]any{
			"tb": table,
			"id": id,
			"content": map[string]any{
				"name":          u.Name,
				"email":         u.Email,
				"password_hash": u.PasswordHash,
				"created_at":    models.CustomDateTime{Time: time.Now().UTC()},
			},
		})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	rows := (*results)[0].Result
	if len(rows) == 0 {
		return fmt.Errorf("creating user: no record returned")
	}

	created := rows[0].toUser()
	u.ID = created.ID
	u.CreatedAt = created.CreatedAt

	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	rec, err := surrealdb.Select[userRecord](ctx, s.db, models.NewRecordID(table, id))
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if rec == nil || rec.ID == nil {
		return nil, user.ErrNotFound
	}

	return rec.toUser(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	results, err := surrealdb.Query[[]userRecord](ctx, s.db,
		`SELECT * FROM type::table($tb) WHERE email = $email LIMIT 1`,
		map[string]any{
			"tb":    table,
			"email": email,
		})
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	rows := (*results)[0].Result
	if len(rows) == 0 {
		return nil, user.ErrNotFound
	}

	return rows[0].toUser(), nil
}
