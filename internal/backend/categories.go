package backend

import (
	"context"
	"net/http"

	"postdesk/internal/models"
)

// ListCategories fetches all content categories on the account.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var env struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/get-all-categories", nil, &env); err != nil {
		return nil, err
	}
	if env.Categories == nil {
		env.Categories = []models.Category{}
	}
	return env.Categories, nil
}

// CreateCategory adds a category by name. The backend does not return the
// created entity, so callers re-fetch the list afterwards.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	payload := struct {
		CategoryName string `json:"category_name"`
	}{CategoryName: name}
	return c.doJSON(ctx, http.MethodPost, "/create-category", payload, nil)
}
