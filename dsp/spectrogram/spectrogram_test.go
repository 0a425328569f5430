package spectrogram

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

func makeSine(freqHz, sampleRate float64, samples int) []float64 {
	out := make([]float64, samples)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / sampleRate)
	}

	return out
}

func TestComputeEmptyInput(t *testing.T) {
	_, err := Compute(nil, 48000)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	_, err = ComputeFrames(nil, 48000)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput for frames, got %v", err)
	}
}

func TestComputeInvalidSampleRate(t *testing.T) {
	samples := makeSine(100, 1000, 512)

	for _, rate := range []float64{0, -44100} {
		_, err := Compute(samples, rate)
		if !errors.Is(err, ErrSampleRate) {
			t.Fatalf("rate %f: expected ErrSampleRate, got %v", rate, err)
		}
	}
}

func TestComputeShapeInvariant(t *testing.T) {
	samples := makeSine(440, 22050, 4096)

	res, err := Compute(samples, 22050)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Intensity) != len(res.Frequencies) {
		t.Fatalf("intensity rows %d != frequency bins %d",
			len(res.Intensity), len(res.Frequencies))
	}

	for k, row := range res.Intensity {
		if len(row) != len(res.Times) {
			t.Fatalf("row %d: length %d != time bins %d", k, len(row), len(res.Times))
		}
	}

	// Default segment 256 gives 129 one-sided bins.
	if len(res.Frequencies) != 129 {
		t.Fatalf("expected 129 frequency bins, got %d", len(res.Frequencies))
	}
}

func TestFrequencyBinBounds(t *testing.T) {
	const sampleRate = 22050.0

	samples := makeSine(440, sampleRate, 8192)

	res, err := Compute(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nyquist := sampleRate / 2
	for k, f := range res.Frequencies {
		if f < 0 || f > nyquist+1e-9 {
			t.Fatalf("frequency bin %d out of [0, nyquist]: %f", k, f)
		}

		if k > 0 && f <= res.Frequencies[k-1] {
			t.Fatalf("frequency bins not strictly increasing at %d", k)
		}
	}

	if res.Frequencies[0] != 0 {
		t.Fatalf("first bin must be DC, got %f", res.Frequencies[0])
	}

	if !nearlyEqual(res.Frequencies[len(res.Frequencies)-1], nyquist) {
		t.Fatalf("last bin must be nyquist: got %f, want %f",
			res.Frequencies[len(res.Frequencies)-1], nyquist)
	}
}

func TestTimeBinsIncreasing(t *testing.T) {
	samples := makeSine(440, 22050, 8192)

	res, err := Compute(samples, 22050)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, ts := range res.Times {
		if ts < 0 {
			t.Fatalf("time bin %d negative: %f", i, ts)
		}

		if i > 0 && ts <= res.Times[i-1] {
			t.Fatalf("time bins not strictly increasing at %d", i)
		}
	}
}

func TestIntensityNonNegative(t *testing.T) {
	samples := makeSine(1000, 48000, 4096)

	res, err := Compute(samples, 48000, WithWindow(window.TypeBlackman))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for k, row := range res.Intensity {
		for i, v := range row {
			if v < 0 || math.IsNaN(v) {
				t.Fatalf("intensity[%d][%d] invalid: %f", k, i, v)
			}
		}
	}
}

func TestStereoUsesFirstChannel(t *testing.T) {
	const sampleRate = 22050.0

	left := makeSine(440, sampleRate, 4096)
	right := makeSine(3000, sampleRate, 4096)

	frames := make([][2]float64, len(left))
	for i := range frames {
		frames[i] = [2]float64{left[i], right[i]}
	}

	mono, err := Compute(left, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stereo, err := ComputeFrames(frames, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for k := range mono.Intensity {
		for i := range mono.Intensity[k] {
			if mono.Intensity[k][i] != stereo.Intensity[k][i] {
				t.Fatalf("stereo differs from first channel at [%d][%d]", k, i)
			}
		}
	}
}

func TestPureTonePeak(t *testing.T) {
	// 1 s of a 440 Hz tone at 22050 Hz with a hann window: the strongest
	// cell must land on the bin nearest 440 Hz, and that bin must dominate
	// most time frames.
	const (
		sampleRate = 22050.0
		toneHz     = 440.0
	)

	samples := makeSine(toneHz, sampleRate, 22050)

	res, err := Compute(samples, sampleRate, WithWindow(window.TypeHann))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	binHz := res.Frequencies[1] - res.Frequencies[0]

	peakFreq, _ := res.Peak()
	if math.Abs(peakFreq-toneHz) > binHz {
		t.Fatalf("peak frequency %f not within one bin of %f", peakFreq, toneHz)
	}

	wantBin := int(math.Round(toneHz / binHz))

	dominant := 0
	for i := range res.Times {
		bestBin := 0
		bestVal := -1.0
		for k := range res.Frequencies {
			if v := res.Intensity[k][i]; v > bestVal {
				bestVal = v
				bestBin = k
			}
		}

		if bestBin == wantBin || bestBin == wantBin-1 || bestBin == wantBin+1 {
			dominant++
		}
	}

	if dominant < len(res.Times)*9/10 {
		t.Fatalf("tone bin dominant in only %d of %d frames", dominant, len(res.Times))
	}
}

func TestSpectrumScalingSineAmplitude(t *testing.T) {
	// A unit sine exactly on a bin center with a boxcar window and
	// spectrum scaling yields a one-sided bin power of 1/2.
	const (
		sampleRate = 1024.0
		fftSize    = 256
	)

	freq := 16 * sampleRate / fftSize

	samples := makeSine(freq, sampleRate, 2048)

	res, err := Compute(samples, sampleRate,
		WithWindow(window.TypeBoxcar),
		WithScaling(ScaleSpectrum),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := res.Intensity[16][len(res.Times)/2]
	if math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("bin power: got %g, want 0.5", got)
	}
}

func TestShortInputClampsSegment(t *testing.T) {
	samples := makeSine(10, 100, 40)

	res, err := Compute(samples, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Times) == 0 {
		t.Fatal("expected at least one frame for short input")
	}
}

func TestOverlapValidation(t *testing.T) {
	samples := makeSine(10, 100, 512)

	_, err := Compute(samples, 100, WithSegmentLength(64), WithOverlap(64))
	if err == nil {
		t.Fatal("expected error for overlap >= segment length")
	}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}
