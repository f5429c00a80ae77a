package ports

import (
	"context"

	"github.com/aicv/cv-service/internal/core/domain"
)

// GenerateCVInput is the DTO passed from the transport layer to the
// generation orchestrator.
type GenerateCVInput struct {
	AccountID      string
	Profile        domain.Profile
	JobDescription string
	TargetLang     string
}

// GenerateCVResult is returned on a successful generation. Text is the
// canonical JSON encoding of Document as extracted from the upstream reply.
type GenerateCVResult struct {
	Document  domain.CVDocument
	Text      string
	Remaining int
}

// GenerationService orchestrates a single CV generation: quota gate,
// upstream call, quota commit.
type GenerationService interface {
	Generate(ctx context.Context, input GenerateCVInput) (*GenerateCVResult, error)
	// Remaining reports the account's current credit balance, initializing
	// the ledger entry for accounts seen for the first time.
	Remaining(ctx context.Context, accountID string) (int, error)
}
