package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bytehacks/bumblebee_service/internal/errors"
	"github.com/bytehacks/bumblebee_service/internal/repository"
)

// ProfileService maintains the child's personalization profile.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	extractor   FactExtractor
	log         zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, extractor FactExtractor, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		extractor:   extractor,
		log:         log,
	}
}

// GetProfile returns the stored profile, or an empty one if none exists yet.
func (s *ProfileService) GetProfile(ctx context.Context) (repository.ChildProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return repository.ChildProfile{}, errors.Wrap(errors.ErrStorageService, "failed to read child profile", err)
	}
	return profile, nil
}

// UpdateFromTranscript extracts new personal facts from the transcript and
// appends them to the stored profile. Profile-store failures follow the
// profile_store policy; an extraction failure is returned to the caller.
func (s *ProfileService) UpdateFromTranscript(ctx context.Context, transcript string) error {
	// 1. Read the current profile. A failed read degrades to extraction
	// against an empty profile.
	existingInfo := ""
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		if PolicyFor(DepProfileStore) != BestEffort {
			return errors.Wrap(errors.ErrStorageService, "failed to read child profile", err)
		}
		s.log.Warn().Err(err).Msg("Failed to read child profile, extracting against empty profile")
	} else {
		existingInfo = profile.Info
	}

	// 2. Ask the model for facts not already on record.
	newInfo, err := s.extractor.ExtractNewInfo(ctx, transcript, existingInfo)
	if err != nil {
		return err
	}
	if strings.TrimSpace(newInfo) == "" {
		return nil
	}

	// 3. Append them to the stored profile.
	updated, err := s.profileRepo.Append(ctx, newInfo, time.Now())
	if err != nil {
		if PolicyFor(DepProfileStore) != BestEffort {
			return errors.Wrap(errors.ErrStorageService, "failed to persist child profile", err)
		}
		s.log.Warn().Err(err).Msg("Failed to persist child profile update")
		return nil
	}

	s.log.Info().
		Str("new_info", newInfo).
		Int("profile_len", len(updated.Info)).
		Msg("Child profile updated")
	return nil
}
