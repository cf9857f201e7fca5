package backend

import (
	"context"
	"errors"
	"net/http"

	"postdesk/internal/models"
)

// ErrNoPosts is returned when a generation call succeeds at the HTTP level
// but the backend produced nothing.
var ErrNoPosts = errors.New("backend: generation returned no posts")

// GenerateRequest describes one generation run. Topics always carries the
// single selected topic id; the backend accepts more but the console
// generates one at a time. ReferenceImage is omitted entirely when no image
// was uploaded rather than sent empty.
type GenerateRequest struct {
	ClientID       string   `json:"client_id"`
	CategoryID     string   `json:"category_id"`
	Topics         []string `json:"topics"`
	NumberOfPosts  int      `json:"number_of_posts"`
	CustomPrompt   string   `json:"custom_prompt,omitempty"`
	VisualStyle    string   `json:"visual_style"`
	ReferenceImage []string `json:"reference_image,omitempty"`
}

// ListPosts fetches the saved post collection for the account.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var env struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/posts/get-all-posts", nil, &env); err != nil {
		return nil, err
	}
	if env.Posts == nil {
		env.Posts = []models.Post{}
	}
	return env.Posts, nil
}

// GeneratePosts asks the backend to produce posts for the request and
// returns them. An empty result is an error: the caller always expects at
// least one post to show.
func (c *Client) GeneratePosts(ctx context.Context, req GenerateRequest) ([]models.Post, error) {
	var env struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/posts/create", req, &env); err != nil {
		return nil, err
	}
	if len(env.Posts) == 0 {
		return nil, ErrNoPosts
	}
	return env.Posts, nil
}

// FinalizePost marks a post as approved. The backend takes a list of ids
// but the console finalizes one post per call.
func (c *Client) FinalizePost(ctx context.Context, clientID, postID string) error {
	payload := struct {
		ClientID string   `json:"client_id"`
		PostIDs  []string `json:"post_ids"`
	}{ClientID: clientID, PostIDs: []string{postID}}
	return c.doJSON(ctx, http.MethodPost, "/posts/finalize-post", payload, nil)
}

// DeletePost removes a saved post. The id travels in the request body, not
// the query string; that is what the backend expects for this endpoint.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	payload := struct {
		PostID string `json:"post_id"`
	}{PostID: postID}
	return c.doJSON(ctx, http.MethodDelete, "/posts/remove", payload, nil)
}
