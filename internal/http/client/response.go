package client

import (
	"time"

	"github.com/zetacorp/billing/internal/client"
)

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
