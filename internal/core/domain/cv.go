package domain

import "errors"

var ErrInvalidRequest = errors.New("invalid generation request")
var ErrQuotaExhausted = errors.New("generation quota exhausted")
var ErrUpstreamUnavailable = errors.New("upstream generation failed")
var ErrMalformedUpstreamResponse = errors.New("malformed upstream response")
var ErrStoreUnavailable = errors.New("document store unavailable")

// Language selects the output language of a generated CV.
type Language string

const (
	LangES   Language = "es"
	LangEN   Language = "en"
	LangAuto Language = "auto"
)

// NormalizeLanguage maps arbitrary client input to a supported selector.
// Anything unrecognised falls back to auto-detection.
func NormalizeLanguage(s string) Language {
	switch Language(s) {
	case LangES, LangEN:
		return Language(s)
	default:
		return LangAuto
	}
}

// ContactInfo is the header block of a generated CV.
type ContactInfo struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
}

// CVEducation is one education line of a generated CV.
type CVEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// CVExperience is one experience block of a generated CV.
type CVExperience struct {
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Dates        string   `json:"dates"`
	BulletPoints []string `json:"bullet_points"`
}

// AdditionalInfo carries the categorised skill and language lists.
type AdditionalInfo struct {
	HardSkills []string `json:"hard_skills"`
	SoftSkills []string `json:"soft_skills"`
	Languages  []string `json:"languages"`
}

// CVDocument is the structured one-page CV produced by the generation relay.
// It is ephemeral: built fresh per request and never persisted.
type CVDocument struct {
	ContactInfo    ContactInfo    `json:"contact_info"`
	Description    string         `json:"description"`
	Education      []CVEducation  `json:"education"`
	Experience     []CVExperience `json:"experience"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
}
