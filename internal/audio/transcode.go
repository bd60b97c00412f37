package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// FFmpegTranscoder converts uploaded audio containers (webm from the browser
// recorder) to 16-bit PCM WAV by shelling out to ffmpeg.
type FFmpegTranscoder struct{}

// ToWAV writes the clip to a temp file, converts it with ffmpeg, and returns
// the WAV bytes. Both temp files are removed on every path.
func (FFmpegTranscoder) ToWAV(ctx context.Context, clip []byte) ([]byte, error) {
	id := uuid.New().String()
	tempClip := filepath.Join(os.TempDir(), fmt.Sprintf("clip_%s.webm", id))
	tempWAV := filepath.Join(os.TempDir(), fmt.Sprintf("clip_%s.wav", id))
	defer os.Remove(tempClip)
	defer os.Remove(tempWAV)

	if err := os.WriteFile(tempClip, clip, 0644); err != nil {
		return nil, fmt.Errorf("failed to save temp audio: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", tempClip,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		tempWAV,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %s: %w", string(output), err)
	}

	wavData, err := os.ReadFile(tempWAV)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted audio: %w", err)
	}
	return wavData, nil
}
