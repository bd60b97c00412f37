package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/bytehacks/bumblebee_service/internal/audio"
	"github.com/bytehacks/bumblebee_service/internal/errors"
)

// PhonemeModel is the pretrained checkpoint the model server runs. Decoding
// is argmax over per-frame logits, so output is deterministic for identical
// weights and samples.
const PhonemeModel = "facebook/wav2vec2-lv-60-espeak-cv-ft"

// PhonemeClient calls the phoneme model server over HTTP. The server accepts
// a 16 kHz mono WAV upload and returns the IPA transcription.
type PhonemeClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// PhonemeResponse is the model server's response payload.
type PhonemeResponse struct {
	Phonemes string `json:"phonemes"`
	Model    string `json:"model,omitempty"`
}

// NewPhonemeClient creates a new phoneme model server client.
func NewPhonemeClient(endpoint, apiKey string, timeout time.Duration) *PhonemeClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &PhonemeClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Infer uploads the waveform and returns the IPA phoneme string.
func (c *PhonemeClient) Infer(ctx context.Context, wf audio.Waveform) (string, error) {
	if c.endpoint == "" {
		return "", errors.New(errors.ErrInferenceService, "phoneme model server not configured")
	}

	// Build multipart/form-data body
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio.EncodeWAV(wf)); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}

	_ = writer.WriteField("model", PhonemeModel)

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("phoneme model server error %d: %s", resp.StatusCode, string(respBody))
	}

	var result PhonemeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Phonemes, nil
}
