package service

import (
	"context"
	"strings"
	"testing"
)

func TestScoringPromptContainsInputs(t *testing.T) {
	prompt := scoringPrompt("the rabbit ran", "ɹ æ b ɪ t")

	for _, want := range []string{
		"Count rhotic sounds in this child's speech:",
		"English transcript: the rabbit ran",
		"IPA phonemes transcript: ɹ æ b ɪ t",
		"incorrect rhotic pronunciations and total rhotic sounds attempted",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestExtractionPromptContainsProfileAndTranscript(t *testing.T) {
	prompt := extractionPrompt("I have a cat called Biscuit", "Name is Mia.")

	for _, want := range []string{
		"Current profile: Name is Mia.",
		"New transcript: I have a cat called Biscuit",
		"Only return NEW information that isn't already in the profile.",
		"If no new personal information is found, return empty string.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestParseRhoticCount(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    RhoticCount
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"incorrect": 2, "total": 5}`,
			want: RhoticCount{Incorrect: 2, Total: 5},
		},
		{
			name: "json fence",
			raw:  "```json\n{\"incorrect\": 1, \"total\": 4}\n```",
			want: RhoticCount{Incorrect: 1, Total: 4},
		},
		{
			name: "bare fence",
			raw:  "```\n{\"incorrect\": 0, \"total\": 0}\n```",
			want: RhoticCount{},
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "prose response",
			raw:     "I counted three rhotic sounds.",
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseRhoticCount(c.raw)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parseRhoticCount(%q) = %+v, want error", c.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRhoticCount(%q): %v", c.raw, err)
			}
			if got != c.want {
				t.Errorf("parseRhoticCount(%q) = %+v, want %+v", c.raw, got, c.want)
			}
		})
	}
}

func TestParseNewInfo(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"new_info": "Has a dog named Rex."}`,
			want: "Has a dog named Rex.",
		},
		{
			name: "empty field",
			raw:  `{"new_info": ""}`,
			want: "",
		},
		{
			name: "json fence",
			raw:  "```json\n{\"new_info\": \"Favorite color is blue.\"}\n```",
			want: "Favorite color is blue.",
		},
		{
			name:    "prose response",
			raw:     "The child mentioned a dog.",
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseNewInfo(c.raw)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parseNewInfo(%q) = %q, want error", c.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseNewInfo(%q): %v", c.raw, err)
			}
			if got != c.want {
				t.Errorf("parseNewInfo(%q) = %q, want %q", c.raw, got, c.want)
			}
		})
	}
}

func TestUnconfiguredClientsReject(t *testing.T) {
	ctx := context.Background()

	if _, err := NewGeminiScorer(nil).Score(ctx, "t", "p"); err == nil {
		t.Error("GeminiScorer with nil client: expected error")
	}
	if _, err := NewOpenAIScorer(nil).Score(ctx, "t", "p"); err == nil {
		t.Error("OpenAIScorer with nil client: expected error")
	}
	if _, err := NewGeminiExtractor(nil).ExtractNewInfo(ctx, "t", ""); err == nil {
		t.Error("GeminiExtractor with nil client: expected error")
	}
	if _, err := NewOpenAIExtractor(nil).ExtractNewInfo(ctx, "t", ""); err == nil {
		t.Error("OpenAIExtractor with nil client: expected error")
	}
}
