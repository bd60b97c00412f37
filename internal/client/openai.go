package client

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient wraps the OpenAI API client.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// WithModel sets the model to use.
func (c *OpenAIClient) WithModel(model string) *OpenAIClient {
	if model != "" {
		c.model = model
	}
	return c
}

// ChatJSON sends a chat message in JSON mode; the prompt must describe the
// expected object shape.
func (c *OpenAIClient) ChatJSON(ctx context.Context, message string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: message,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
