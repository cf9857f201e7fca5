package backend

import (
	"context"
	"net/http"
	"net/url"

	"postdesk/internal/models"
)

// ListTopics fetches every topic across all categories. Filtering by
// category happens in the view layer.
func (c *Client) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var env struct {
		Topics []models.Topic `json:"topics"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/get-all-topics", nil, &env); err != nil {
		return nil, err
	}
	if env.Topics == nil {
		env.Topics = []models.Topic{}
	}
	return env.Topics, nil
}

// CreateTopic adds a topic under a category. Like category creation the
// backend returns no entity, so callers re-fetch.
func (c *Client) CreateTopic(ctx context.Context, categoryID, title, description string) error {
	payload := struct {
		CategoryID  string `json:"category_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}{CategoryID: categoryID, Title: title, Description: description}
	return c.doJSON(ctx, http.MethodPost, "/create-topic", payload, nil)
}

// DeleteTopic removes a single topic by id.
func (c *Client) DeleteTopic(ctx context.Context, topicID string) error {
	q := url.Values{}
	q.Set("topic_id", topicID)
	return c.doJSON(ctx, http.MethodDelete, "/remove-topic?"+q.Encode(), nil, nil)
}
