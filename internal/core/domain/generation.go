package domain

import "time"

// GenerationRecord is the metadata-only audit entry written after a
// successful generation. It deliberately carries no profile or job content.
type GenerationRecord struct {
	AccountID  string    `json:"account_id"`
	TargetLang Language  `json:"target_lang"`
	Remaining  int       `json:"remaining"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
