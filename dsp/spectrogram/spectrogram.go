package spectrogram

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

const (
	defaultSegmentLength = 256
	defaultTukeyTaper    = 0.25
)

// Scaling selects the normalization applied to frame power values.
type Scaling int

const (
	// ScaleDensity normalizes to a power spectral density,
	// 1 / (sampleRate * sum(w^2)).
	ScaleDensity Scaling = iota
	// ScaleSpectrum normalizes to a power spectrum, 1 / sum(w)^2.
	ScaleSpectrum
	// ScaleNone applies no normalization.
	ScaleNone
)

// Result holds a computed spectrogram.
//
// Intensity is indexed [frequencyBin][timeBin]:
// len(Intensity) == len(Frequencies) and every row has len(Times) entries.
type Result struct {
	Frequencies []float64   // bin center frequencies in Hz, 0 to Nyquist
	Times       []float64   // frame center times in seconds
	Intensity   [][]float64 // non-negative power values
}

// Peak returns the frequency and time of the strongest intensity cell.
func (r *Result) Peak() (freqHz, timeS float64) {
	best := -1.0
	for k, row := range r.Intensity {
		for i, v := range row {
			if v > best {
				best = v
				freqHz = r.Frequencies[k]
				timeS = r.Times[i]
			}
		}
	}

	return freqHz, timeS
}

// Option configures spectrogram computation.
type Option func(*config)

type config struct {
	segmentLength int
	overlap       int
	hasOverlap    bool
	fftSize       int
	windowType    window.Type
	windowParam   float64
	hasParam      bool
	windowPower   float64
	scaling       Scaling
	noDetrend     bool
}

func defaultConfig() config {
	return config{
		segmentLength: defaultSegmentLength,
		windowType:    window.TypeTukey,
		windowParam:   defaultTukeyTaper,
		hasParam:      true,
		scaling:       ScaleDensity,
	}
}

// WithSegmentLength sets the frame length in samples.
func WithSegmentLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.segmentLength = n
		}
	}
}

// WithOverlap sets the number of samples shared by adjacent frames.
// The default is segment length / 8.
func WithOverlap(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.overlap = n
			c.hasOverlap = true
		}
	}
}

// WithFFTSize sets the transform size. The default is the segment length
// rounded up to the next power of two; shorter frames are zero-padded.
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fftSize = n
		}
	}
}

// WithWindow sets the window function shaping every frame.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
		c.hasParam = false
	}
}

// WithWindowParam sets the shape parameter of a parametric window type.
func WithWindowParam(v float64) Option {
	return func(c *config) {
		c.windowParam = v
		c.hasParam = true
	}
}

// WithWindowPower sets the exponent of the general_gaussian window.
func WithWindowPower(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.windowPower = v
		}
	}
}

// WithScaling selects the power normalization mode.
func WithScaling(s Scaling) Option {
	return func(c *config) {
		c.scaling = s
	}
}

// WithoutDetrend disables the per-frame constant (mean) removal.
func WithoutDetrend() Option {
	return func(c *config) {
		c.noDetrend = true
	}
}

// Compute calculates the spectrogram of a mono waveform.
//
// It returns [ErrEmptyInput] for an empty waveform and [ErrSampleRate] for
// a non-positive sample rate. A segment length larger than the waveform is
// clamped to the waveform length.
func Compute(samples []float64, sampleRate float64, opts ...Option) (*Result, error) {
	if err := validateInput(samples, sampleRate); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	seg := cfg.segmentLength
	if seg > len(samples) {
		seg = len(samples)
	}

	overlap := seg / 8
	if cfg.hasOverlap {
		overlap = cfg.overlap
	}
	if overlap >= seg {
		return nil, fmt.Errorf("overlap must be smaller than segment length: %d >= %d", overlap, seg)
	}

	hop := seg - overlap

	fftSize := cfg.fftSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(seg)
	}
	if fftSize < seg {
		return nil, fmt.Errorf("fft size must be >= segment length: %d < %d", fftSize, seg)
	}

	winOpts := []window.Option{window.WithPeriodic()}
	if cfg.hasParam {
		winOpts = append(winOpts, window.WithParam(cfg.windowParam))
	}
	if cfg.windowPower > 0 {
		winOpts = append(winOpts, window.WithPower(cfg.windowPower))
	}

	coeffs := window.Generate(cfg.windowType, seg, winOpts...)
	if len(coeffs) != seg {
		return nil, fmt.Errorf("window generation failed for segment length %d", seg)
	}

	scale := powerScale(cfg.scaling, coeffs, sampleRate)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrogram fft plan: %w", err)
	}

	frameCount := (len(samples)-seg)/hop + 1
	binCount := fftSize/2 + 1

	frequencies := make([]float64, binCount)
	for k := range frequencies {
		frequencies[k] = float64(k) * sampleRate / float64(fftSize)
	}

	times := make([]float64, frameCount)
	for i := range times {
		times[i] = (float64(i*hop) + float64(seg)/2) / sampleRate
	}

	intensity := make([][]float64, binCount)
	for k := range intensity {
		intensity[k] = make([]float64, frameCount)
	}

	frame := make([]float64, seg)
	fftIn := make([]complex128, fftSize)
	fftOut := make([]complex128, fftSize)
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	power := make([]float64, binCount)

	for i := 0; i < frameCount; i++ {
		copy(frame, samples[i*hop:i*hop+seg])

		if !cfg.noDetrend {
			removeMean(frame)
		}

		vecmath.MulBlockInPlace(frame, coeffs)

		for j := range fftIn {
			fftIn[j] = 0
		}
		for j, v := range frame {
			fftIn[j] = complex(v, 0)
		}

		if err := plan.Forward(fftOut, fftIn); err != nil {
			return nil, fmt.Errorf("spectrogram fft frame %d: %w", i, err)
		}

		for k := 0; k < binCount; k++ {
			re[k] = real(fftOut[k])
			im[k] = imag(fftOut[k])
		}

		vecmath.Power(power, re, im)

		for k := 0; k < binCount; k++ {
			v := power[k] * scale

			// One-sided spectrum: interior bins carry the energy of the
			// mirrored negative frequencies as well.
			if k > 0 && k < binCount-1 {
				v *= 2
			}

			intensity[k][i] = v
		}
	}

	return &Result{
		Frequencies: frequencies,
		Times:       times,
		Intensity:   intensity,
	}, nil
}

// ComputeFrames calculates the spectrogram of a two-channel waveform in
// frame-interleaved form. Only channel 0 is analyzed; the second channel
// is discarded. This is a fixed policy, not configurable.
func ComputeFrames(frames [][2]float64, sampleRate float64, opts ...Option) (*Result, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyInput
	}

	mono := make([]float64, len(frames))
	for i, f := range frames {
		mono[i] = f[0]
	}

	return Compute(mono, sampleRate, opts...)
}

func powerScale(s Scaling, coeffs []float64, sampleRate float64) float64 {
	switch s {
	case ScaleDensity:
		sumSq := 0.0
		for _, w := range coeffs {
			sumSq += w * w
		}
		if sumSq == 0 {
			return 0
		}
		return 1 / (sampleRate * sumSq)
	case ScaleSpectrum:
		sum := 0.0
		for _, w := range coeffs {
			sum += w
		}
		if sum == 0 {
			return 0
		}
		return 1 / (sum * sum)
	default:
		return 1
	}
}

func removeMean(frame []float64) {
	sum := 0.0
	for _, v := range frame {
		sum += v
	}

	mean := sum / float64(len(frame))
	for i := range frame {
		frame[i] -= mean
	}
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
