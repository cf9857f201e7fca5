package backend

import (
	"context"
	"net/http"
	"net/url"

	"postdesk/internal/models"
)

// ListClients fetches every client on the account. The backend wraps the
// list in a {"clients": [...]} envelope; an absent field yields an empty
// slice, never nil-deref surprises downstream.
func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var env struct {
		Clients []models.Client `json:"clients"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/clients/all-clients", nil, &env); err != nil {
		return nil, err
	}
	if env.Clients == nil {
		env.Clients = []models.Client{}
	}
	return env.Clients, nil
}

// CreateClient registers a new client profile and returns the identifier
// the backend assigned to it.
func (c *Client) CreateClient(ctx context.Context, payload models.ClientPayload) (string, error) {
	var resp struct {
		ClientID string `json:"client_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/create", payload, &resp); err != nil {
		return "", err
	}
	return resp.ClientID, nil
}

// DeleteClient removes a client and all of its data. The cascade is
// irreversible on the backend side, so callers gate this behind an explicit
// confirmation step.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("delete_all_data", "true")
	return c.doJSON(ctx, http.MethodDelete, "/clients/remove?"+q.Encode(), nil, nil)
}
