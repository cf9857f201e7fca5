package forms

import (
	"net/url"
	"strings"

	"postdesk/internal/backend"
)

// VisualStyles is the fixed set of looks the generation form offers.
var VisualStyles = []string{"bold", "elegant", "vibrant", "vintage", "minimal"}

// GenerateForm carries the generation request as submitted. A run needs a
// client, a category, a topic and a style; the prompt and reference image
// are optional extras.
type GenerateForm struct {
	ClientID     string
	CategoryID   string
	TopicID      string
	VisualStyle  string
	CustomPrompt string
}

// ParseGenerateForm reads the generation form out of posted values.
func ParseGenerateForm(v url.Values) GenerateForm {
	return GenerateForm{
		ClientID:     v.Get("client_id"),
		CategoryID:   v.Get("category_id"),
		TopicID:      v.Get("topic_id"),
		VisualStyle:  v.Get("visual_style"),
		CustomPrompt: v.Get("custom_prompt"),
	}
}

// Missing names the required selections that are still empty, in the order
// the form shows them. An empty result means the form is complete.
func (f GenerateForm) Missing() []string {
	var missing []string
	if strings.TrimSpace(f.ClientID) == "" {
		missing = append(missing, "client")
	}
	if strings.TrimSpace(f.CategoryID) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(f.TopicID) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(f.VisualStyle) == "" {
		missing = append(missing, "visual style")
	}
	return missing
}

// Request builds the generation request. The reference image URL is
// attached only when an upload produced one; an empty URL leaves the field
// out of the payload entirely.
func (f GenerateForm) Request(refImageURL string) backend.GenerateRequest {
	req := backend.GenerateRequest{
		ClientID:      f.ClientID,
		CategoryID:    f.CategoryID,
		Topics:        []string{f.TopicID},
		NumberOfPosts: 1,
		CustomPrompt:  f.CustomPrompt,
		VisualStyle:   f.VisualStyle,
	}
	if refImageURL != "" {
		req.ReferenceImage = []string{refImageURL}
	}
	return req
}
