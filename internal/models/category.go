package models

// Category groups topics for content planning.
type Category struct {
	ID   string `json:"category_id"`
	Name string `json:"category_name"`
}

// Topic is a content idea scoped to a category. Topics are immutable once
// created; the only mutations are creation and deletion.
type Topic struct {
	ID          string `json:"topic_id"`
	CategoryID  string `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
