package audio

import (
	"context"
	"fmt"
)

// TargetSampleRate is the sample rate the phoneme model expects.
const TargetSampleRate = 16000

// transcoder converts a compressed clip to WAV bytes.
type transcoder interface {
	ToWAV(ctx context.Context, clip []byte) ([]byte, error)
}

// Normalizer converts uploaded clips into mono waveforms at the target rate.
type Normalizer struct {
	transcoder transcoder
}

// NewNormalizer creates a normalizer backed by ffmpeg.
func NewNormalizer() *Normalizer {
	return &Normalizer{transcoder: FFmpegTranscoder{}}
}

// Normalize transcodes and decodes the clip, resampling to TargetSampleRate
// when the converted audio reports a different rate.
func (n *Normalizer) Normalize(ctx context.Context, clip []byte) (Waveform, error) {
	wavData, err := n.transcoder.ToWAV(ctx, clip)
	if err != nil {
		return Waveform{}, fmt.Errorf("audio conversion failed: %w", err)
	}

	wf, err := DecodeWAV(wavData)
	if err != nil {
		return Waveform{}, fmt.Errorf("audio decode failed: %w", err)
	}

	if wf.SampleRate != TargetSampleRate {
		wf.Samples = Resample(wf.Samples, wf.SampleRate, TargetSampleRate)
		wf.SampleRate = TargetSampleRate
	}

	return wf, nil
}
