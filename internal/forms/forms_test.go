package forms

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
)

func TestSplitComma(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"  ", []string{}},
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , , b ,", []string{"a", "b"}},
		{"#fff, #0a0a0a", []string{"#fff", "#0a0a0a"}},
	}
	for _, tt := range tests {
		if got := SplitComma(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitComma(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"\n\n", []string{}},
		{"one", []string{"one"}},
		{"one\ntwo", []string{"one", "two"}},
		{"one\r\ntwo\r\n", []string{"one", "two"}},
		{"one\n\n  \nthree", []string{"one", "three"}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClientFormPayload(t *testing.T) {
	v := url.Values{}
	v.Set("client_name", "Acme Soap")
	v.Set("focus", "handmade soap")
	v.Set("call_to_actions", "Shop now, Visit us,")
	v.Set("writing_samples", "First sample\n\nSecond sample\n")
	v.Set("brand_colors", "#fff,#0a0a0a")
	v.Set("typography", "serif")
	v.Set("format_preferences", "square, story")
	v.Set("logo_urls", "https://a.example/logo.png\nhttps://a.example/alt.png")
	v.Set("reference_links", "https://a.example\n")
	v.Set("asset_notes", "use the round logo")

	payload, err := ParseClientForm(v).Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}

	if payload.ClientName != "Acme Soap" {
		t.Errorf("ClientName = %q", payload.ClientName)
	}
	if want := []string{"Shop now", "Visit us"}; !reflect.DeepEqual(payload.CallToActions, want) {
		t.Errorf("CallToActions = %v", payload.CallToActions)
	}
	if want := []string{"First sample", "Second sample"}; !reflect.DeepEqual(payload.WritingSamples, want) {
		t.Errorf("WritingSamples = %v", payload.WritingSamples)
	}

	guide := payload.DesignGuide
	if want := []string{"#fff", "#0a0a0a"}; !reflect.DeepEqual(guide.BrandColors, want) {
		t.Errorf("BrandColors = %v", guide.BrandColors)
	}
	if guide.Typography != "serif" {
		t.Errorf("Typography = %q", guide.Typography)
	}
	if want := []string{"square", "story"}; !reflect.DeepEqual(guide.FormatPreferences, want) {
		t.Errorf("FormatPreferences = %v", guide.FormatPreferences)
	}
	if len(guide.LogoURLs) != 2 || len(guide.ReferenceLinks) != 1 {
		t.Errorf("LogoURLs = %v, ReferenceLinks = %v", guide.LogoURLs, guide.ReferenceLinks)
	}
	if guide.AssetNotes != "use the round logo" {
		t.Errorf("AssetNotes = %q", guide.AssetNotes)
	}
}

func TestClientFormPayload_NameRequired(t *testing.T) {
	v := url.Values{}
	v.Set("client_name", "   ")
	v.Set("focus", "anything")

	_, err := ParseClientForm(v).Payload()
	if !errors.Is(err, ErrClientNameRequired) {
		t.Fatalf("err = %v, want ErrClientNameRequired", err)
	}
}

func TestClientFormPayload_EmptyListsNotNil(t *testing.T) {
	v := url.Values{}
	v.Set("client_name", "Acme Soap")

	payload, err := ParseClientForm(v).Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload.CallToActions == nil || payload.WritingSamples == nil {
		t.Error("list fields are nil, want empty slices")
	}
	if payload.DesignGuide.BrandColors == nil || payload.DesignGuide.LogoURLs == nil {
		t.Error("design guide list fields are nil, want empty slices")
	}
}

func TestGenerateFormMissing(t *testing.T) {
	f := GenerateForm{}
	want := []string{"client", "category", "topic", "visual style"}
	if got := f.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}

	f = GenerateForm{ClientID: "CLT-1", CategoryID: "cat-1", TopicID: "top-1", VisualStyle: "bold"}
	if got := f.Missing(); len(got) != 0 {
		t.Errorf("Missing() = %v, want none", got)
	}

	f.CategoryID = " "
	if got := f.Missing(); len(got) != 1 || got[0] != "category" {
		t.Errorf("Missing() = %v, want [category]", got)
	}
}

func TestGenerateFormRequest(t *testing.T) {
	f := GenerateForm{
		ClientID:     "CLT-1",
		CategoryID:   "cat-1",
		TopicID:      "top-1",
		VisualStyle:  "vibrant",
		CustomPrompt: "keep it playful",
	}

	req := f.Request("")
	if req.NumberOfPosts != 1 {
		t.Errorf("NumberOfPosts = %d", req.NumberOfPosts)
	}
	if !reflect.DeepEqual(req.Topics, []string{"top-1"}) {
		t.Errorf("Topics = %v", req.Topics)
	}
	if req.ReferenceImage != nil {
		t.Errorf("ReferenceImage = %v, want nil without upload", req.ReferenceImage)
	}

	req = f.Request("https://cdn.example.com/ref.png")
	if !reflect.DeepEqual(req.ReferenceImage, []string{"https://cdn.example.com/ref.png"}) {
		t.Errorf("ReferenceImage = %v", req.ReferenceImage)
	}
}

func TestParseGenerateFormUsesTopicID(t *testing.T) {
	v := url.Values{}
	v.Set("client_id", "CLT-1")
	v.Set("category_id", "cat-1")
	v.Set("topic_id", "top-1")
	v.Set("visual_style", "bold")

	f := ParseGenerateForm(v)
	if f.TopicID != "top-1" {
		t.Fatalf("TopicID = %q", f.TopicID)
	}
	// The request carries the id, never the display title.
	if got := f.Request("").Topics; !reflect.DeepEqual(got, []string{"top-1"}) {
		t.Errorf("Topics = %v, want the selected topic id", got)
	}
}
