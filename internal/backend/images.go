package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadImage sends a reference image to the backend and returns the URL it
// was stored under. The backend expects a multipart form with the file, a
// display name, and the owning client id.
func (c *Client) UploadImage(ctx context.Context, clientID, name string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("backend upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("backend upload copy: %w", err)
	}
	if err := mw.WriteField("image_name", name); err != nil {
		return "", fmt.Errorf("backend upload field: %w", err)
	}
	if err := mw.WriteField("client_id", clientID); err != nil {
		return "", fmt.Errorf("backend upload field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("backend upload close: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/images/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(req, "/images/upload", &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
