package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bytehacks/bumblebee_service/internal/audio"
	"github.com/bytehacks/bumblebee_service/internal/client"
	"github.com/bytehacks/bumblebee_service/internal/errors"
)

// AudioNormalizer converts an uploaded clip into the waveform the phoneme
// model expects.
type AudioNormalizer interface {
	Normalize(ctx context.Context, clip []byte) (audio.Waveform, error)
}

// PhonemeInferencer transcribes a waveform into an IPA phoneme string.
type PhonemeInferencer interface {
	Infer(ctx context.Context, wf audio.Waveform) (string, error)
}

// Assessment is the result of analyzing one practice attempt.
type Assessment struct {
	Transcript string `json:"transcript"`
	Phonemes   string `json:"phonemes"`
	Incorrect  int    `json:"incorrect"`
	Total      int    `json:"total"`
}

// AnalysisService runs the pronunciation analysis pipeline.
type AnalysisService struct {
	normalizer     AudioNormalizer
	phonemeClient  PhonemeInferencer
	scorer         Scorer
	scoreService   *ScoreService
	profileService *ProfileService
	r2Client       *client.CloudflareClient
	log            zerolog.Logger
}

// NewAnalysisService creates a new AnalysisService. r2Client may be nil, in
// which case clips are not archived.
func NewAnalysisService(
	normalizer AudioNormalizer,
	phonemeClient PhonemeInferencer,
	scorer Scorer,
	scoreService *ScoreService,
	profileService *ProfileService,
	r2Client *client.CloudflareClient,
	log zerolog.Logger,
) *AnalysisService {
	return &AnalysisService{
		normalizer:     normalizer,
		phonemeClient:  phonemeClient,
		scorer:         scorer,
		scoreService:   scoreService,
		profileService: profileService,
		r2Client:       r2Client,
		log:            log,
	}
}

// Analyze scores one practice attempt and applies its side effects. The
// pipeline is not transactional: the daily score can be recorded while a
// later step fails.
func (s *AnalysisService) Analyze(ctx context.Context, transcript string, clip []byte) (*Assessment, error) {
	// 1. Convert the upload to mono 16 kHz PCM.
	wf, err := s.normalizer.Normalize(ctx, clip)
	if err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "failed to decode audio", err)
	}

	// 2. Transcribe phonemes.
	phonemes, err := s.phonemeClient.Infer(ctx, wf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInferenceService, "phoneme inference failed", err)
	}

	// 3. Count rhotic sounds.
	count, err := s.scorer.Score(ctx, transcript, phonemes)
	if err != nil {
		return nil, err
	}

	// 4. Merge the counts into today's score.
	if err := s.scoreService.RecordToday(ctx, count); err != nil {
		if PolicyFor(DepScoreStore) == Fatal {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("Failed to record daily score")
	}

	// 5. Enrich the child profile. Store failures are handled inside per the
	// profile_store policy; anything returned here is fatal.
	if err := s.profileService.UpdateFromTranscript(ctx, transcript); err != nil {
		return nil, err
	}

	// 6. Archive the raw clip.
	if err := s.archiveClip(ctx, clip); err != nil {
		if PolicyFor(DepClipArchive) == Fatal {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("Failed to archive practice clip")
	}

	s.log.Info().
		Float64("duration_sec", wf.Duration()).
		Str("phonemes", phonemes).
		Int("incorrect", count.Incorrect).
		Int("total", count.Total).
		Msg("Analysis completed")

	return &Assessment{
		Transcript: transcript,
		Phonemes:   phonemes,
		Incorrect:  count.Incorrect,
		Total:      count.Total,
	}, nil
}

func (s *AnalysisService) archiveClip(ctx context.Context, clip []byte) error {
	if s.r2Client == nil {
		return nil
	}

	key := fmt.Sprintf("clips/%s.webm", uuid.New().String())
	if _, err := s.r2Client.Upload(ctx, key, clip, "audio/webm"); err != nil {
		return errors.Wrap(errors.ErrStorageService, "failed to archive practice clip", err)
	}
	return nil
}
