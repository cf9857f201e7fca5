package forms

import (
	"errors"
	"net/url"
	"strings"

	"postdesk/internal/models"
)

// ErrClientNameRequired is the only hard validation on the client form.
// Every other field is optional; the backend fills in what it can.
var ErrClientNameRequired = errors.New("forms: client name is required")

// ClientForm carries the flat client onboarding form exactly as submitted.
// Multi-value fields arrive as a single string and are split in Payload.
type ClientForm struct {
	ClientName          string
	Focus               string
	Services            string
	BusinessDescription string
	Audience            string
	WritingInstructions string
	Tagline             string
	CallToActions       string // comma separated
	CaptionEnding       string
	WritingSamples      string // one sample per line
	ContactInfo         string
	Website             string
	Phone               string
	Email               string
	BrandColors         string // comma separated
	Typography          string
	DesignStyle         string
	ImageMood           string
	DosDonts            string
	DesignCheckpoints   string
	FormatPreferences   string // comma separated
	LogoURLs            string // one URL per line
	ReferenceLinks      string // one URL per line
	AssetNotes          string
}

// ParseClientForm reads the onboarding form out of posted values.
func ParseClientForm(v url.Values) ClientForm {
	return ClientForm{
		ClientName:          v.Get("client_name"),
		Focus:               v.Get("focus"),
		Services:            v.Get("services"),
		BusinessDescription: v.Get("business_description"),
		Audience:            v.Get("audience"),
		WritingInstructions: v.Get("writing_instructions"),
		Tagline:             v.Get("tagline"),
		CallToActions:       v.Get("call_to_actions"),
		CaptionEnding:       v.Get("caption_ending"),
		WritingSamples:      v.Get("writing_samples"),
		ContactInfo:         v.Get("contact_info"),
		Website:             v.Get("website"),
		Phone:               v.Get("number"),
		Email:               v.Get("mail"),
		BrandColors:         v.Get("brand_colors"),
		Typography:          v.Get("typography"),
		DesignStyle:         v.Get("design_style"),
		ImageMood:           v.Get("image_mood"),
		DosDonts:            v.Get("dos_donts"),
		DesignCheckpoints:   v.Get("design_checkpoints"),
		FormatPreferences:   v.Get("format_preferences"),
		LogoURLs:            v.Get("logo_urls"),
		ReferenceLinks:      v.Get("reference_links"),
		AssetNotes:          v.Get("asset_notes"),
	}
}

// Payload nests the flat form into the create-client request body. Design
// related fields move under design_guide; list fields are tokenized.
func (f ClientForm) Payload() (models.ClientPayload, error) {
	if strings.TrimSpace(f.ClientName) == "" {
		return models.ClientPayload{}, ErrClientNameRequired
	}

	return models.ClientPayload{
		ClientName:          f.ClientName,
		Focus:               f.Focus,
		Services:            f.Services,
		BusinessDescription: f.BusinessDescription,
		Audience:            f.Audience,
		WritingInstructions: f.WritingInstructions,
		Tagline:             f.Tagline,
		CallToActions:       SplitComma(f.CallToActions),
		CaptionEnding:       f.CaptionEnding,
		WritingSamples:      SplitLines(f.WritingSamples),
		ContactInfo:         f.ContactInfo,
		Website:             f.Website,
		Phone:               f.Phone,
		Email:               f.Email,
		DesignGuide: models.DesignGuide{
			BrandColors:       SplitComma(f.BrandColors),
			Typography:        f.Typography,
			DesignStyle:       f.DesignStyle,
			ImageMood:         f.ImageMood,
			DosDonts:          f.DosDonts,
			DesignCheckpoints: f.DesignCheckpoints,
			FormatPreferences: SplitComma(f.FormatPreferences),
			LogoURLs:          SplitLines(f.LogoURLs),
			ReferenceLinks:    SplitLines(f.ReferenceLinks),
			AssetNotes:        f.AssetNotes,
		},
	}, nil
}
