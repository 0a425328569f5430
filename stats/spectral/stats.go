package spectral

import "math"

// FrameStats holds summary statistics of a single spectrogram frame
// (one time bin of power values).
type FrameStats struct {
	BinCount int
	Energy   float64 // sum of power values
	Peak     float64
	PeakBin  int
	Centroid float64 // power-weighted mean frequency (Hz)
	Spread   float64 // standard deviation around the centroid (Hz)
	Flatness float64 // Wiener entropy, 0..1, DC bin excluded
}

// FrameStatistics computes summary statistics for every time bin of an
// intensity matrix and returns one entry per frame.
func FrameStatistics(intensity [][]float64, sampleRate float64) []FrameStats {
	binCount := len(intensity)
	if binCount == 0 {
		return nil
	}

	frameCount := len(intensity[0])

	out := make([]FrameStats, frameCount)
	column := make([]float64, binCount)

	for t := 0; t < frameCount; t++ {
		for k := 0; k < binCount; k++ {
			column[k] = intensity[k][t]
		}

		out[t] = calculateFrame(column, sampleRate)
	}

	return out
}

func calculateFrame(power []float64, sampleRate float64) FrameStats {
	n := len(power)

	s := FrameStats{BinCount: n}
	if n == 0 {
		return s
	}

	s.Peak = power[0]
	for i, v := range power {
		s.Energy += v
		if v > s.Peak {
			s.Peak = v
			s.PeakBin = i
		}
	}

	s.Centroid = centroid(power, sampleRate)
	s.Spread = spread(power, sampleRate, s.Centroid, s.Energy)
	s.Flatness = flatness(power)

	return s
}

// spread computes the power-weighted standard deviation around the centroid.
func spread(power []float64, sampleRate float64, cent, total float64) float64 {
	n := len(power)
	if n < 2 || total == 0 {
		return 0
	}

	weightedSq := 0.0
	for i, v := range power {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSq += diff * diff * v
	}

	return math.Sqrt(weightedSq / total)
}

// flatness computes the ratio of geometric to arithmetic mean over bins
// 1..N-1. A single zero bin forces the geometric mean, and hence the
// flatness, to zero.
func flatness(power []float64) float64 {
	n := len(power)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0
	hasZero := false

	for i := 1; i < n; i++ {
		v := power[i]
		sumLin += v
		if v > 0 {
			sumLog += math.Log(v)
		} else {
			hasZero = true
		}
	}

	meanLin := sumLin / float64(nBins)
	if meanLin == 0 || hasZero {
		return 0
	}

	return math.Exp(sumLog/float64(nBins)) / meanLin
}
