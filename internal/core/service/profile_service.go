package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
)

// ProfileService implements profile reads and merge writes.
type ProfileService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) Get(ctx context.Context, accountID string) (*ports.ProfileView, error) {
	profile, err := s.repo.GetOrDefault(ctx, accountID)
	if err != nil {
		s.log.Error().Err(err).Str("account_id", accountID).Msg("profile read failed")
		return nil, fmt.Errorf("get profile: %w", domain.ErrStoreUnavailable)
	}
	return &ports.ProfileView{Profile: profile, Complete: profile.IsComplete()}, nil
}

func (s *ProfileService) Update(ctx context.Context, accountID string, p domain.Profile) error {
	if err := s.repo.Save(ctx, accountID, p); err != nil {
		s.log.Error().Err(err).Str("account_id", accountID).Msg("profile write failed")
		return fmt.Errorf("update profile: %w", domain.ErrStoreUnavailable)
	}
	s.log.Info().Str("account_id", accountID).Msg("profile updated")
	return nil
}
