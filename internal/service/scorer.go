package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bytehacks/bumblebee_service/internal/client"
	"github.com/bytehacks/bumblebee_service/internal/errors"
)

const scoringPromptTemplate = `Count rhotic sounds in this child's speech:

English transcript: %s
IPA phonemes transcript: %s

Return the count of incorrect rhotic pronunciations and total rhotic sounds attempted.`

const scoringResponseFormat = `

Respond ONLY with valid JSON in this exact format:
{"incorrect": 0, "total": 0}`

// RhoticCount is the scoring result for a single practice attempt.
type RhoticCount struct {
	Incorrect int `json:"incorrect"`
	Total     int `json:"total"`
}

// Scorer counts rhotic sounds in a practice attempt, given the English
// transcript and the IPA phoneme transcription of the same clip. The counts
// are taken from the model as-is; no local range checking is applied.
type Scorer interface {
	Score(ctx context.Context, transcript, phonemes string) (RhoticCount, error)
}

// rhoticCountSchema constrains Gemini structured output to the RhoticCount shape.
var rhoticCountSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"incorrect": {Type: genai.TypeInteger},
		"total":     {Type: genai.TypeInteger},
	},
	Required: []string{"incorrect", "total"},
}

func scoringPrompt(transcript, phonemes string) string {
	return fmt.Sprintf(scoringPromptTemplate, transcript, phonemes)
}

// GeminiScorer scores attempts with a Gemini structured-output call.
type GeminiScorer struct {
	geminiClient *client.GeminiClient
}

// NewGeminiScorer creates a new GeminiScorer.
func NewGeminiScorer(geminiClient *client.GeminiClient) *GeminiScorer {
	return &GeminiScorer{geminiClient: geminiClient}
}

// Score counts rhotic sounds in the given transcript/phoneme pair.
func (s *GeminiScorer) Score(ctx context.Context, transcript, phonemes string) (RhoticCount, error) {
	if s.geminiClient == nil {
		return RhoticCount{}, errors.New(errors.ErrAIService, "Gemini client not configured")
	}

	raw, err := s.geminiClient.GenerateJSON(ctx, scoringPrompt(transcript, phonemes), rhoticCountSchema)
	if err != nil {
		return RhoticCount{}, errors.Wrap(errors.ErrAIService, "rhotic scoring failed", err)
	}

	return parseRhoticCount(raw)
}

// OpenAIScorer scores attempts with an OpenAI JSON-mode call.
type OpenAIScorer struct {
	openaiClient *client.OpenAIClient
}

// NewOpenAIScorer creates a new OpenAIScorer.
func NewOpenAIScorer(openaiClient *client.OpenAIClient) *OpenAIScorer {
	return &OpenAIScorer{openaiClient: openaiClient}
}

// Score counts rhotic sounds in the given transcript/phoneme pair.
func (s *OpenAIScorer) Score(ctx context.Context, transcript, phonemes string) (RhoticCount, error) {
	if s.openaiClient == nil {
		return RhoticCount{}, errors.New(errors.ErrAIService, "OpenAI client not configured")
	}

	raw, err := s.openaiClient.ChatJSON(ctx, scoringPrompt(transcript, phonemes)+scoringResponseFormat)
	if err != nil {
		return RhoticCount{}, errors.Wrap(errors.ErrAIService, "rhotic scoring failed", err)
	}

	return parseRhoticCount(raw)
}

func parseRhoticCount(raw string) (RhoticCount, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var count RhoticCount
	if err := json.Unmarshal([]byte(clean), &count); err != nil {
		return RhoticCount{}, errors.Wrap(errors.ErrAIService, "failed to parse scoring response", err)
	}
	return count, nil
}
