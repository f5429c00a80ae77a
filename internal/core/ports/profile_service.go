package ports

import (
	"context"

	"github.com/aicv/cv-service/internal/core/domain"
)

// ProfileView is the read model returned to the UI: the stored profile plus
// a completeness flag the generation flow depends on.
type ProfileView struct {
	Profile  domain.Profile
	Complete bool
}

// ProfileService defines use-case operations for the résumé profile.
type ProfileService interface {
	Get(ctx context.Context, accountID string) (*ProfileView, error)
	Update(ctx context.Context, accountID string, p domain.Profile) error
}
