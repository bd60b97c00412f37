package audio

import "math"

// Resample converts a sample buffer from one rate to another using linear
// interpolation. The input is returned unchanged when the rates match.
func Resample(samples []int16, fromRate, toRate int) []int16 {
	if fromRate == toRate || len(samples) == 0 || fromRate <= 0 || toRate <= 0 {
		return samples
	}

	outLen := len(samples) * toRate / fromRate
	if outLen < 1 {
		outLen = 1
	}

	step := float64(fromRate) / float64(toRate)
	out := make([]int16, outLen)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		v := float64(samples[idx])*(1-frac) + float64(samples[idx+1])*frac
		out[i] = int16(math.Round(v))
	}
	return out
}
