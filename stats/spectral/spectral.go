// Package spectral derives per-frame features from spectrogram intensity
// matrices: spectral centroid, spectral roll-off, and a mel-scaled
// spectrogram, plus per-frame summary statistics.
package spectral

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/spectrogram"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

const (
	defaultRolloffFraction = 0.85
	defaultMelBands        = 128
)

// ErrNoInput is returned when neither a waveform nor an intensity matrix
// is supplied.
var ErrNoInput = errors.New("either a waveform or an intensity matrix is required")

// Features holds per-frame spectral features.
//
// Centroid and Rolloff have one entry per time bin. MelSpectrogram is
// indexed [melBand][timeBin].
type Features struct {
	Centroid       []float64
	Rolloff        []float64
	MelSpectrogram [][]float64
}

// Option configures feature extraction.
type Option func(*config)

type config struct {
	rolloffFraction float64
	melBands        int
	fminHz          float64
	fmaxHz          float64
	transformOpts   []spectrogram.Option
}

func defaultExtractConfig() config {
	return config{
		rolloffFraction: defaultRolloffFraction,
		melBands:        defaultMelBands,
	}
}

// WithRolloffFraction sets the energy fraction of the roll-off point.
func WithRolloffFraction(v float64) Option {
	return func(c *config) {
		if v > 0 && v < 1 {
			c.rolloffFraction = v
		}
	}
}

// WithMelBands sets the number of mel filter bank bands.
func WithMelBands(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.melBands = n
		}
	}
}

// WithFrequencyRange limits the mel filter bank to [fmin, fmax] Hz.
// The default range is 0 to Nyquist.
func WithFrequencyRange(fminHz, fmaxHz float64) Option {
	return func(c *config) {
		if fminHz >= 0 {
			c.fminHz = fminHz
		}
		if fmaxHz > fminHz {
			c.fmaxHz = fmaxHz
		}
	}
}

// WithWindow sets the window used when the intensity matrix is computed
// from a raw waveform.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.transformOpts = append(c.transformOpts, spectrogram.WithWindow(t))
	}
}

// WithWindowParam sets the window shape parameter for the waveform path.
func WithWindowParam(v float64) Option {
	return func(c *config) {
		c.transformOpts = append(c.transformOpts, spectrogram.WithWindowParam(v))
	}
}

// Extract computes per-frame features from an intensity matrix, a raw
// waveform, or both.
//
// When intensity is nil, the matrix is computed from samples first; this
// path requires a positive sample rate and fails with
// [spectrogram.ErrSampleRate] otherwise. When both are supplied the
// intensity matrix wins and samples are ignored. With neither,
// [ErrNoInput] is returned.
func Extract(samples []float64, intensity [][]float64, sampleRate float64, opts ...Option) (*Features, error) {
	cfg := defaultExtractConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(intensity) == 0 {
		if len(samples) == 0 {
			return nil, ErrNoInput
		}

		res, err := spectrogram.Compute(samples, sampleRate, cfg.transformOpts...)
		if err != nil {
			return nil, fmt.Errorf("feature transform: %w", err)
		}

		intensity = res.Intensity
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %f", spectrogram.ErrSampleRate, sampleRate)
	}

	binCount := len(intensity)
	frameCount := 0
	if binCount > 0 {
		frameCount = len(intensity[0])
	}

	fmax := cfg.fmaxHz
	if fmax <= 0 {
		fmax = sampleRate / 2
	}

	bank := melFilterBank(cfg.melBands, binCount, sampleRate, cfg.fminHz, fmax)

	out := &Features{
		Centroid:       make([]float64, frameCount),
		Rolloff:        make([]float64, frameCount),
		MelSpectrogram: make([][]float64, cfg.melBands),
	}

	for m := range out.MelSpectrogram {
		out.MelSpectrogram[m] = make([]float64, frameCount)
	}

	column := make([]float64, binCount)
	for t := 0; t < frameCount; t++ {
		for k := 0; k < binCount; k++ {
			column[k] = intensity[k][t]
		}

		out.Centroid[t] = centroid(column, sampleRate)
		out.Rolloff[t] = rolloff(column, sampleRate, cfg.rolloffFraction)

		for m, filter := range bank {
			sum := 0.0
			for k, w := range filter {
				if w != 0 {
					sum += w * column[k]
				}
			}

			out.MelSpectrogram[m][t] = sum
		}
	}

	return out, nil
}

// binFreq returns the frequency in Hz of bin i of a one-sided power
// spectrum with binCount bins.
func binFreq(i int, sampleRate float64, binCount int) float64 {
	if binCount < 2 {
		return 0
	}

	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// centroid returns the power-weighted mean frequency of one frame.
func centroid(power []float64, sampleRate float64) float64 {
	n := len(power)
	if n < 2 {
		return 0
	}

	sum := 0.0
	weighted := 0.0
	for i, v := range power {
		sum += v
		weighted += binFreq(i, sampleRate, n) * v
	}

	if sum == 0 {
		return 0
	}

	return weighted / sum
}

// rolloff returns the frequency below which the given fraction of the
// frame's power is contained. The values are power (squared magnitude)
// already, so they are accumulated directly.
func rolloff(power []float64, sampleRate float64, fraction float64) float64 {
	n := len(power)
	if n < 2 {
		return 0
	}

	total := 0.0
	for _, v := range power {
		total += v
	}

	if total == 0 {
		return 0
	}

	threshold := fraction * total
	cum := 0.0
	for i, v := range power {
		cum += v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}
