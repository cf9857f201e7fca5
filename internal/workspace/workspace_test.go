package workspace

import (
	"errors"
	"testing"

	"postdesk/internal/models"
)

func post(id, caption, hashtags string) models.Post {
	return models.Post{ID: id, ClientID: "CLT-1", Caption: caption, Hashtags: hashtags}
}

func TestAppendGenerated_SeedsEditorAndCollection(t *testing.T) {
	w := New()
	w.Posts.Replace([]models.Post{post("old-1", "existing", "")})

	w.AppendGenerated([]models.Post{post("new-1", "Fresh caption", "#soap #clean")})

	cur, caption, ok := w.Current()
	if !ok {
		t.Fatal("editor empty after generation")
	}
	if cur.ID != "new-1" {
		t.Errorf("current = %q", cur.ID)
	}
	if want := "Fresh caption\n\n#soap #clean"; caption != want {
		t.Errorf("caption = %q, want %q", caption, want)
	}
	if w.Posts.Len() != 2 {
		t.Errorf("Posts.Len = %d, want 2 (existing plus generated)", w.Posts.Len())
	}
}

func TestAppendGenerated_NoHashtags(t *testing.T) {
	w := New()
	w.AppendGenerated([]models.Post{post("p-1", "Caption only", "")})

	_, caption, _ := w.Current()
	if caption != "Caption only" {
		t.Errorf("caption = %q, want no separator without hashtags", caption)
	}
}

func TestAppendGenerated_ReplacesPreviousCurrent(t *testing.T) {
	w := New()
	w.AppendGenerated([]models.Post{post("p-1", "first", "")})
	w.AppendGenerated([]models.Post{post("p-2", "second", "")})

	cur, _, _ := w.Current()
	if cur.ID != "p-2" {
		t.Errorf("current = %q, want the newer post", cur.ID)
	}
	if w.Posts.Len() != 2 {
		t.Errorf("Posts.Len = %d, want both runs kept", w.Posts.Len())
	}
}

func TestSetCaption(t *testing.T) {
	w := New()
	if err := w.SetCaption("anything"); !errors.Is(err, ErrNoCurrentPost) {
		t.Fatalf("err = %v, want ErrNoCurrentPost", err)
	}

	w.AppendGenerated([]models.Post{post("p-1", "orig", "")})
	if err := w.SetCaption("edited"); err != nil {
		t.Fatalf("SetCaption: %v", err)
	}
	if _, caption, _ := w.Current(); caption != "edited" {
		t.Errorf("caption = %q", caption)
	}
}

func TestSetCaption_FinalizedReadOnly(t *testing.T) {
	w := New()
	w.AppendGenerated([]models.Post{post("p-1", "orig", "")})
	w.Finalize("p-1")

	if err := w.SetCaption("too late"); !errors.Is(err, ErrPostFinalized) {
		t.Fatalf("err = %v, want ErrPostFinalized", err)
	}
}

func TestFinalize_PatchesBothCopies(t *testing.T) {
	w := New()
	w.AppendGenerated([]models.Post{post("p-1", "caption", "")})

	w.Finalize("p-1")

	cur, _, _ := w.Current()
	if !bool(cur.Finalized) {
		t.Error("editor copy not finalized")
	}
	saved, ok := w.Posts.Find("p-1")
	if !ok || !bool(saved.Finalized) {
		t.Errorf("saved copy not finalized: %+v", saved)
	}
}

func TestFinalize_DifferentPostLeavesEditorAlone(t *testing.T) {
	w := New()
	w.Posts.Replace([]models.Post{post("p-1", "a", ""), post("p-2", "b", "")})
	w.AppendGenerated([]models.Post{post("p-3", "c", "")})

	w.Finalize("p-2")

	cur, _, _ := w.Current()
	if bool(cur.Finalized) {
		t.Error("editor copy finalized for an unrelated post")
	}
	saved, _ := w.Posts.Find("p-2")
	if !bool(saved.Finalized) {
		t.Error("target post not finalized")
	}
}

func TestRemovePost_ClearsEditorOnMatch(t *testing.T) {
	w := New()
	w.AppendGenerated([]models.Post{post("p-1", "caption", "")})

	w.RemovePost("p-1")

	if _, _, ok := w.Current(); ok {
		t.Error("editor still holds the removed post")
	}
	if w.Posts.Len() != 0 {
		t.Errorf("Posts.Len = %d", w.Posts.Len())
	}
}

func TestRemovePost_OtherPostKeepsEditor(t *testing.T) {
	w := New()
	w.Posts.Replace([]models.Post{post("p-1", "a", "")})
	w.AppendGenerated([]models.Post{post("p-2", "b", "")})

	w.RemovePost("p-1")

	cur, _, ok := w.Current()
	if !ok || cur.ID != "p-2" {
		t.Errorf("editor = %+v ok=%v, want p-2 kept", cur, ok)
	}
}
