// Package models defines the entities exchanged with the content-generation
// backend. All of them are externally owned: the backend assigns identifiers
// (e.g. "CLT-20251109-170052" for clients) and is the source of truth; the
// console only holds re-fetchable copies.
package models

// Client is a business profile managed by the agency.
type Client struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Focus       string `json:"focus"`
	Services    string `json:"services"`
	Description string `json:"business_description"`
	ContactInfo string `json:"contact_info"`
	Website     string `json:"website"`
	Phone       string `json:"number"`
	Email       string `json:"mail"`
}

// DesignGuide is the nested design section of the client-creation payload.
type DesignGuide struct {
	BrandColors       []string `json:"brand_colors"`
	Typography        string   `json:"typography"`
	DesignStyle       string   `json:"design_style"`
	ImageMood         string   `json:"image_mood"`
	DosDonts          string   `json:"dos_donts"`
	DesignCheckpoints string   `json:"design_checkpoints"`
	FormatPreferences []string `json:"format_preferences"`
	LogoURLs          []string `json:"logo_urls"`
	ReferenceLinks    []string `json:"reference_links"`
	AssetNotes        string   `json:"asset_notes"`
}

// ClientPayload is the nested shape the backend expects when creating a
// client. List fields are real arrays; the flat-form-to-payload transform
// lives in the forms package.
type ClientPayload struct {
	ClientName          string      `json:"client_name"`
	Focus               string      `json:"focus"`
	Services            string      `json:"services"`
	BusinessDescription string      `json:"business_description"`
	Audience            string      `json:"audience"`
	WritingInstructions string      `json:"writing_instructions"`
	Tagline             string      `json:"tagline"`
	CallToActions       []string    `json:"call_to_actions"`
	CaptionEnding       string      `json:"caption_ending"`
	WritingSamples      []string    `json:"writing_samples"`
	ContactInfo         string      `json:"contact_info"`
	Website             string      `json:"website"`
	Phone               string      `json:"number"`
	Email               string      `json:"mail"`
	DesignGuide         DesignGuide `json:"design_guide"`
}
