package ports

import (
	"context"

	"github.com/aicv/cv-service/internal/core/domain"
)

// GenerationRepository persists the metadata-only audit trail of successful
// generations.
type GenerationRepository interface {
	Insert(ctx context.Context, record *domain.GenerationRecord) error
	// ListRecent returns the newest records first, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]domain.GenerationRecord, error)
}
