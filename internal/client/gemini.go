package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient wraps the Google Gemini client.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client against the Gemini API backend
// using an API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  "gemini-2.5-flash",
	}, nil
}

// NewGeminiVertexClient creates a new Gemini client against the Vertex AI
// backend using ambient Google Cloud credentials.
func NewGeminiVertexClient(ctx context.Context, projectID, location string) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini vertex client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  "gemini-2.5-flash",
	}, nil
}

// WithModel sets the model to use.
func (c *GeminiClient) WithModel(model string) *GeminiClient {
	if model != "" {
		c.model = model
	}
	return c
}

// Close closes the client.
func (c *GeminiClient) Close() {
	// No explicit close needed for the genai SDK
}

// GenerateJSON sends a prompt with a structured-output schema and returns the
// model's raw JSON text.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
