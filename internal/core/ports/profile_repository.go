package ports

import (
	"context"

	"github.com/aicv/cv-service/internal/core/domain"
)

// ProfileRepository persists the per-account résumé profile document.
type ProfileRepository interface {
	// GetOrDefault returns the stored profile, or a zero-value profile when
	// the account has never saved one.
	GetOrDefault(ctx context.Context, accountID string) (domain.Profile, error)

	// Save upserts the full profile document for the account.
	Save(ctx context.Context, accountID string, p domain.Profile) error
}
