package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aicv/cv-service/internal/api/metrics"
	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
)

// CVGenerator abstracts the generation relay.
type CVGenerator interface {
	Generate(ctx context.Context, profile domain.Profile, jobText string, lang domain.Language) (domain.CVDocument, string, error)
}

// AuditSink accepts generation records for asynchronous persistence. Enqueue
// must not block the request path.
type AuditSink interface {
	Enqueue(record domain.GenerationRecord)
}

// GenerationService orchestrates a single CV generation. Order matters:
// the quota is checked before the upstream call and committed only after it
// succeeds, so a failed generation never costs a credit, and an account that
// loses the commit race never receives content.
type GenerationService struct {
	ledger ports.QuotaLedger
	relay  CVGenerator
	audit  AuditSink
	log    zerolog.Logger
}

func NewGenerationService(ledger ports.QuotaLedger, relay CVGenerator, audit AuditSink, log zerolog.Logger) *GenerationService {
	return &GenerationService{ledger: ledger, relay: relay, audit: audit, log: log}
}

func (s *GenerationService) Generate(ctx context.Context, input ports.GenerateCVInput) (*ports.GenerateCVResult, error) {
	if input.Profile.IsZero() || strings.TrimSpace(input.JobDescription) == "" {
		return nil, domain.ErrInvalidRequest
	}
	lang := domain.NormalizeLanguage(input.TargetLang)

	credits, err := s.ledger.EnsureInitialized(ctx, input.AccountID)
	if err != nil {
		s.log.Error().Err(err).Str("account_id", input.AccountID).Msg("ledger read failed")
		return nil, fmt.Errorf("generate: %w", domain.ErrStoreUnavailable)
	}
	if credits <= 0 {
		metrics.QuotaDeniedTotal.WithLabelValues("precheck").Inc()
		return nil, domain.ErrQuotaExhausted
	}

	start := time.Now()
	doc, raw, err := s.relay.Generate(ctx, input.Profile, input.JobDescription, lang)
	if err != nil {
		// No quota is consumed on this path.
		return nil, err
	}

	remaining, ok, err := s.ledger.TryConsumeOne(ctx, input.AccountID)
	if err != nil {
		// Fail closed: discard the generated content rather than serve it
		// without accounting for it.
		s.log.Error().Err(err).Str("account_id", input.AccountID).Msg("ledger commit failed, discarding generated cv")
		return nil, fmt.Errorf("generate: %w", domain.ErrStoreUnavailable)
	}
	if !ok {
		// A concurrent request consumed the last credit between the check
		// and the commit. The content is discarded.
		metrics.QuotaDeniedTotal.WithLabelValues("commit").Inc()
		s.log.Warn().Str("account_id", input.AccountID).Msg("quota exhausted at commit, discarding generated cv")
		return nil, domain.ErrQuotaExhausted
	}

	s.audit.Enqueue(domain.GenerationRecord{
		AccountID:  input.AccountID,
		TargetLang: lang,
		Remaining:  remaining,
		DurationMs: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	})

	s.log.Info().
		Str("account_id", input.AccountID).
		Str("lang", string(lang)).
		Int("remaining", remaining).
		Msg("cv generated")

	return &ports.GenerateCVResult{Document: doc, Text: raw, Remaining: remaining}, nil
}

// Remaining reports the current balance, seeding the starting allotment for
// accounts observed for the first time.
func (s *GenerationService) Remaining(ctx context.Context, accountID string) (int, error) {
	credits, err := s.ledger.EnsureInitialized(ctx, accountID)
	if err != nil {
		s.log.Error().Err(err).Str("account_id", accountID).Msg("ledger read failed")
		return 0, fmt.Errorf("quota read: %w", domain.ErrStoreUnavailable)
	}
	return credits, nil
}
