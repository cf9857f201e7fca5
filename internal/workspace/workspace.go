// Package workspace holds the console's working state: the synced resource
// collections plus the post currently open in the editor. There is one
// workspace per process; the console is a single-operator tool.
package workspace

import (
	"errors"
	"sync"

	"postdesk/internal/models"
	"postdesk/internal/state"
)

var (
	// ErrPostFinalized rejects edits to a post that has been approved.
	ErrPostFinalized = errors.New("workspace: post is finalized")

	// ErrNoCurrentPost means an edit arrived with nothing in the editor.
	ErrNoCurrentPost = errors.New("workspace: no post in the editor")
)

// Workspace is the shared working state behind the console views.
type Workspace struct {
	Clients    *state.Collection[models.Client]
	Categories *state.Collection[models.Category]
	Topics     *state.Collection[models.Topic]
	Posts      *state.Collection[models.Post]

	mu      sync.Mutex
	current *models.Post
	caption string
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{
		Clients:    state.NewCollection(func(c models.Client) string { return c.ID }),
		Categories: state.NewCollection(func(c models.Category) string { return c.ID }),
		Topics:     state.NewCollection(func(t models.Topic) string { return t.ID }),
		Posts:      state.NewCollection(func(p models.Post) string { return p.ID }),
	}
}

// AppendGenerated installs a generation result: the first post replaces
// whatever was in the editor, its caption (with hashtags folded in) seeds
// the editable text, and every returned post is appended to the saved
// collection.
func (w *Workspace) AppendGenerated(posts []models.Post) {
	if len(posts) == 0 {
		return
	}
	w.mu.Lock()
	first := posts[0]
	w.current = &first
	w.caption = first.DisplayCaption()
	w.mu.Unlock()

	w.Posts.Append(posts...)
}

// Current returns a copy of the post in the editor along with the caption
// text as edited so far. ok is false when the editor is empty.
func (w *Workspace) Current() (post models.Post, caption string, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return models.Post{}, "", false
	}
	return *w.current, w.caption, true
}

// SetCaption updates the editable caption for the post in the editor.
// Finalized posts are read only.
func (w *Workspace) SetCaption(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return ErrNoCurrentPost
	}
	if bool(w.current.Finalized) {
		return ErrPostFinalized
	}
	w.caption = text
	return nil
}

// Finalize marks the post as approved in every in-memory copy: the saved
// collection and, when it is the same post, the editor slot.
func (w *Workspace) Finalize(postID string) {
	w.Posts.Patch(postID, func(p *models.Post) { p.Finalized = true })

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current != nil && w.current.ID == postID {
		w.current.Finalized = true
	}
}

// RemovePost drops a post from the saved collection and clears the editor
// if it held the same post.
func (w *Workspace) RemovePost(postID string) {
	w.Posts.Remove(postID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current != nil && w.current.ID == postID {
		w.current = nil
		w.caption = ""
	}
}

// ClearCurrent empties the editor without touching the saved collection.
func (w *Workspace) ClearCurrent() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = nil
	w.caption = ""
}
