package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/zetacorp/billing/internal/client"
)

const table = "client"

type Store struct {
	db *surrealdb.DB
}

func New(db *surrealdb.DB) *Store {
	return &Store{db: db}
}

type clientRecord struct {
	ID        *models.RecordID      `json:"id,omitempty"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	UserID    string                `json:"user_id"`
	CreatedAt models.CustomDateTime `json:"created_at"`
}

func (r *clientRecord) toClient() *client.Client {
	return &client.Client{
		ID:        recordID(r.ID),
		Name:      r.Name,
		Email:     r.Email,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt.Time,
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

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	id := uuid.New().String()

	results, err := surrealdb.Query[[]clientRecord](ctx, s.db,
		`CREATE type::thing($tb, $id) CONTENT $content`,
		map[string]any{
			"tb": table,
			"id": id,
			"content": map[string]any{
				"name":       c.Name,
				"email":      c.Email,
				"user_id":    c.UserID,
				"created_at": models.CustomDateTime{Time: time.Now().UTC()},
			},
		})
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	rows := (*results)[0].Result
	if len(rows) == 0 {
		return fmt.Errorf("creating client: no record returned")
	}

	created := rows[0].toClient()
	c.ID = created.ID
	c.CreatedAt = created.CreatedAt

	return nil
}

func (s *Store) GetClient(ctx context.Context, id string) (*client.Client, error) {
	rec, err := surrealdb.Select[clientRecord](ctx, s.db, models.NewRecordID(table, id))
	if err != nil {
		return nil, fmt.Errorf("getting client: %w", err)
	}

	if rec == nil || rec.ID == nil {
		return nil, client.ErrNotFound
	}

	return rec.toClient(), nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	results, err := surrealdb.Query[[]clientRecord](ctx, s.db,
		`UPDATE type::thing($tb, $id) SET name = $name, email = $email RETURN AFTER`,
		map[string]any{
			"tb":    table,
			"id":    c.ID,
			"name":  c.Name,
			"email": c.Email,
		})
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if len((*results)[0].Result) == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	_, err := surrealdb.Query[[]clientRecord](ctx, s.db,
		`DELETE type::thing($tb, $id)`,
		map[string]any{
			"tb": table,
			"id": id,
		})
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}

func (s *Store) ListClients(ctx context.Context, userID string) ([]*client.Client, error) {
	results, err := surrealdb.Query[[]clientRecord](ctx, s.db,
		`SELECT * FROM type::table($tb) WHERE user_id = $user_id ORDER BY name ASC`,
		map[string]any{
			"tb":      table,
			"user_id": userID,
		})
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	rows := (*results)[0].Result

	clients := make([]*client.Client, len(rows))
	for i := range rows {
		clients[i] = rows[i].toClient()
	}

	return clients, nil
}
