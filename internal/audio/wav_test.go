package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func sineWave(rate, n int, freq float64) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(8000 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Waveform{Samples: sineWave(16000, 1600, 440), SampleRate: 16000}

	out, err := DecodeWAV(EncodeWAV(in))
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}

	if out.SampleRate != in.SampleRate {
		t.Errorf("sample rate = %d, want %d", out.SampleRate, in.SampleRate)
	}
	if len(out.Samples) != len(in.Samples) {
		t.Fatalf("sample count = %d, want %d", len(out.Samples), len(in.Samples))
	}
	for i := range in.Samples {
		if out.Samples[i] != in.Samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV([]byte("definitely not a wav file")); err == nil {
		t.Error("expected error for non-WAV data")
	}
	if _, err := DecodeWAV(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

// encodeStereoWAV builds a two-channel 16-bit PCM file for downmix tests.
func encodeStereoWAV(left, right []int16, rate int) []byte {
	var buf bytes.Buffer
	dataSize := len(left) * 4

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := range left {
		binary.Write(&buf, binary.LittleEndian, left[i])
		binary.Write(&buf, binary.LittleEndian, right[i])
	}
	return buf.Bytes()
}

func TestDecodeDownmixesStereo(t *testing.T) {
	left := []int16{100, 200, -300, 400}
	right := []int16{300, 0, -100, 400}

	wf, err := DecodeWAV(encodeStereoWAV(left, right, 16000))
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}

	want := []int16{200, 100, -200, 400}
	if len(wf.Samples) != len(want) {
		t.Fatalf("sample count = %d, want %d", len(wf.Samples), len(want))
	}
	for i := range want {
		if wf.Samples[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, wf.Samples[i], want[i])
		}
	}
}

func TestDecodeSkipsExtraChunks(t *testing.T) {
	mono := EncodeWAV(Waveform{Samples: []int16{1, 2, 3, 4}, SampleRate: 16000})

	// Splice a LIST chunk between fmt and data, as ffmpeg often emits.
	var buf bytes.Buffer
	buf.Write(mono[:36])
	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("INFO")
	buf.Write(mono[36:])
	data := buf.Bytes()
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))

	wf, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}
	if len(wf.Samples) != 4 {
		t.Errorf("sample count = %d, want 4", len(wf.Samples))
	}
}

func TestDuration(t *testing.T) {
	wf := Waveform{Samples: make([]int16, 8000), SampleRate: 16000}
	if d := wf.Duration(); d != 0.5 {
		t.Errorf("Duration() = %v, want 0.5", d)
	}
	if d := (Waveform{}).Duration(); d != 0 {
		t.Errorf("empty Duration() = %v, want 0", d)
	}
}
