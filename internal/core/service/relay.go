package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
)

// CVRelay builds the structured prompt, performs the single upstream call and
// normalizes the textual reply into a strict CV document. It never retries
// and never persists or logs profile or job content.
type CVRelay struct {
	generator ports.TextGenerator
	log       zerolog.Logger
}

func NewCVRelay(generator ports.TextGenerator, log zerolog.Logger) *CVRelay {
	return &CVRelay{generator: generator, log: log}
}

// Generate produces a tailored CV for the profile and job text. It returns
// the decoded document together with the exact JSON span extracted from the
// upstream reply.
func (r *CVRelay) Generate(ctx context.Context, profile domain.Profile, jobText string, lang domain.Language) (domain.CVDocument, string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return domain.CVDocument{}, "", fmt.Errorf("generate cv: encode profile: %w", err)
	}

	prompt := buildPrompt(string(profileJSON), truncateJobText(jobText), lang)

	reply, err := r.generator.GenerateText(ctx, prompt)
	if err != nil {
		// Log the cause, surface only the sentinel: upstream detail must not
		// reach the client.
		r.log.Error().Err(err).Str("lang", string(lang)).Msg("upstream generation call failed")
		return domain.CVDocument{}, "", fmt.Errorf("generate cv: %w", domain.ErrUpstreamUnavailable)
	}

	raw, err := extractJSONObject(reply)
	if err != nil {
		r.log.Error().Str("lang", string(lang)).Int("reply_len", len(reply)).Msg("no JSON object in upstream reply")
		return domain.CVDocument{}, "", fmt.Errorf("generate cv: %w", domain.ErrMalformedUpstreamResponse)
	}

	var doc domain.CVDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		r.log.Error().Err(err).Str("lang", string(lang)).Msg("upstream reply is not a valid CV document")
		return domain.CVDocument{}, "", fmt.Errorf("generate cv: %w", domain.ErrMalformedUpstreamResponse)
	}

	return doc, raw, nil
}
