package models

import "fmt"

// Flag is the backend's stringly-typed boolean. The wire format carries the
// literal strings "True" and "False"; inside the process it behaves as a
// plain bool. The quirk is confined to the JSON boundary.
type Flag bool

// MarshalJSON encodes the flag using the backend's exact wire strings.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte(`"True"`), nil
	}
	return []byte(`"False"`), nil
}

// UnmarshalJSON accepts the canonical "True"/"False" strings plus the
// lowercase and bare-boolean forms some backend snapshots emit.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"True"`, `"true"`, `true`:
		*f = true
	case `"False"`, `"false"`, `false`, `""`, `null`:
		*f = false
	default:
		return fmt.Errorf("models: invalid finalized flag %s", data)
	}
	return nil
}

// Post is a generated social-media post owned by the backend. The console
// holds transient copies; the backend remains authoritative.
type Post struct {
	ID             string   `json:"post_id"`
	ClientID       string   `json:"client_id"`
	CategoryID     string   `json:"category_id"`
	Topics         []string `json:"topics"`
	Caption        string   `json:"caption"`
	Hashtags       string   `json:"hashtags"`
	ImageURL       string   `json:"image_url"`
	VisualStyle    string   `json:"visual_style,omitempty"`
	ReferenceImage []string `json:"reference_image,omitempty"`
	Finalized      Flag     `json:"finalized"`
}

// DisplayCaption returns the caption followed by the hashtags block,
// separated by a blank line, or just the caption when there are no hashtags.
func (p *Post) DisplayCaption() string {
	if p.Hashtags == "" {
		return p.Caption
	}
	return p.Caption + "\n\n" + p.Hashtags
}
