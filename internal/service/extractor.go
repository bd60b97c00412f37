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

const extractionPromptTemplate = `Extract any personal information about the child from this transcript and add it to their profile.

Current profile: %s
New transcript: %s

Look for information like: name, age, favorite color, favorite toy, pet names, siblings, hobbies, etc.
Only return NEW information that isn't already in the profile. Keep it simple and conversational.
If no new personal information is found, return empty string.`

const extractionResponseFormat = `

Respond ONLY with valid JSON in this exact format:
{"new_info": ""}`

// FactExtractor pulls personal facts about the child out of a transcript. The
// model sees the profile text already on record and returns only facts not
// present there; an empty string means nothing new was found.
type FactExtractor interface {
	ExtractNewInfo(ctx context.Context, transcript, existingInfo string) (string, error)
}

// newInfoSchema constrains Gemini structured output to a single new_info field.
var newInfoSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"new_info": {Type: genai.TypeString},
	},
	Required: []string{"new_info"},
}

type personalizationUpdate struct {
	NewInfo string `json:"new_info"`
}

func extractionPrompt(transcript, existingInfo string) string {
	return fmt.Sprintf(extractionPromptTemplate, existingInfo, transcript)
}

// GeminiExtractor extracts facts with a Gemini structured-output call.
type GeminiExtractor struct {
	geminiClient *client.GeminiClient
}

// NewGeminiExtractor creates a new GeminiExtractor.
func NewGeminiExtractor(geminiClient *client.GeminiClient) *GeminiExtractor {
	return &GeminiExtractor{geminiClient: geminiClient}
}

// ExtractNewInfo returns facts from the transcript not already in existingInfo.
func (e *GeminiExtractor) ExtractNewInfo(ctx context.Context, transcript, existingInfo string) (string, error) {
	if e.geminiClient == nil {
		return "", errors.New(errors.ErrAIService, "Gemini client not configured")
	}

	raw, err := e.geminiClient.GenerateJSON(ctx, extractionPrompt(transcript, existingInfo), newInfoSchema)
	if err != nil {
		return "", errors.Wrap(errors.ErrAIService, "personalization extraction failed", err)
	}

	return parseNewInfo(raw)
}

// OpenAIExtractor extracts facts with an OpenAI JSON-mode call.
type OpenAIExtractor struct {
	openaiClient *client.OpenAIClient
}

// NewOpenAIExtractor creates a new OpenAIExtractor.
func NewOpenAIExtractor(openaiClient *client.OpenAIClient) *OpenAIExtractor {
	return &OpenAIExtractor{openaiClient: openaiClient}
}

// ExtractNewInfo returns facts from the transcript not already in existingInfo.
func (e *OpenAIExtractor) ExtractNewInfo(ctx context.Context, transcript, existingInfo string) (string, error) {
	if e.openaiClient == nil {
		return "", errors.New(errors.ErrAIService, "OpenAI client not configured")
	}

	raw, err := e.openaiClient.ChatJSON(ctx, extractionPrompt(transcript, existingInfo)+extractionResponseFormat)
	if err != nil {
		return "", errors.Wrap(errors.ErrAIService, "personalization extraction failed", err)
	}

	return parseNewInfo(raw)
}

func parseNewInfo(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var update personalizationUpdate
	if err := json.Unmarshal([]byte(clean), &update); err != nil {
		return "", errors.Wrap(errors.ErrAIService, "failed to parse extraction response", err)
	}
	return update.NewInfo, nil
}
