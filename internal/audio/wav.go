package audio

import (
	"encoding/binary"
	"fmt"
)

// Waveform is a mono PCM sample buffer with its sample rate.
type Waveform struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

const wavHeaderSize = 44

// EncodeWAV serializes a waveform as a 16-bit PCM mono WAV file.
func EncodeWAV(w Waveform) []byte {
	dataSize := len(w.Samples) * 2
	buf := make([]byte, wavHeaderSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)                          // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)                           // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1)                           // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(w.SampleRate))        // sample rate
	binary.LittleEndian.PutUint32(buf[28:32], uint32(w.SampleRate*2))      // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], 2)                           // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                          // bits per sample

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, s := range w.Samples {
		binary.LittleEndian.PutUint16(buf[wavHeaderSize+i*2:], uint16(s))
	}

	return buf
}

// DecodeWAV parses a 16-bit PCM WAV file into a mono waveform.
// Multi-channel audio is downmixed by averaging across channels.
func DecodeWAV(data []byte) (Waveform, error) {
	if len(data) < 12 {
		return Waveform{}, fmt.Errorf("wav data too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Waveform{}, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var (
		sampleRate int
		channels   int
		haveFmt    bool
		pcm        []byte
	)

	// Walk the chunk list; ffmpeg output may carry LIST and other chunks
	// between fmt and data.
	off := 12
	for off+8 <= len(data) {
		chunkID := string(data[off : off+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return Waveform{}, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format != 1 {
				return Waveform{}, fmt.Errorf("unsupported wav format code %d, want PCM", format)
			}
			if bits != 16 {
				return Waveform{}, fmt.Errorf("unsupported bit depth %d, want 16", bits)
			}
			if channels < 1 {
				return Waveform{}, fmt.Errorf("invalid channel count %d", channels)
			}
			haveFmt = true
		case "data":
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		off = body + chunkSize
		if chunkSize%2 == 1 {
			off++
		}
	}

	if !haveFmt {
		return Waveform{}, fmt.Errorf("missing fmt chunk")
	}
	if pcm == nil {
		return Waveform{}, fmt.Errorf("missing data chunk")
	}

	frames := len(pcm) / (2 * channels)
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		var sum int
		for c := 0; c < channels; c++ {
			v := int16(binary.LittleEndian.Uint16(pcm[(i*channels+c)*2:]))
			sum += int(v)
		}
		samples[i] = int16(sum / channels)
	}

	return Waveform{Samples: samples, SampleRate: sampleRate}, nil
}
