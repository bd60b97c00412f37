package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bytehacks/bumblebee_service/internal/errors"
	"github.com/bytehacks/bumblebee_service/internal/repository"
)

const dayKeyFormat = "2006-01-02"

// ScoreService tracks rhotic scores aggregated per calendar day.
type ScoreService struct {
	scoreRepo repository.DailyScoreRepository
	log       zerolog.Logger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(scoreRepo repository.DailyScoreRepository, log zerolog.Logger) *ScoreService {
	return &ScoreService{
		scoreRepo: scoreRepo,
		log:       log,
	}
}

// RecordToday merges an attempt's counts into today's record. Day keys come
// from the process-local wall clock with no timezone normalization, so
// attempts near midnight land on whichever date the server clock reports.
func (s *ScoreService) RecordToday(ctx context.Context, count RhoticCount) error {
	day := time.Now().Format(dayKeyFormat)
	if err := s.scoreRepo.AddCounts(ctx, day, count.Incorrect, count.Total); err != nil {
		return errors.Wrap(errors.ErrStorageService, "failed to record daily score", err)
	}

	s.log.Debug().
		Str("day", day).
		Int("incorrect", count.Incorrect).
		Int("total", count.Total).
		Msg("Daily score updated")
	return nil
}

// ListScores returns every daily record in date order.
func (s *ScoreService) ListScores(ctx context.Context) ([]repository.DailyScore, error) {
	scores, err := s.scoreRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorageService, "failed to list daily scores", err)
	}
	return scores, nil
}
