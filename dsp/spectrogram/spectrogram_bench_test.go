package spectrogram

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

func BenchmarkCompute1s(b *testing.B) {
	const sampleRate = 22050.0

	samples := make([]float64, 22050)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Compute(samples, sampleRate); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeHannLargeSegment(b *testing.B) {
	const sampleRate = 48000.0

	samples := make([]float64, 48000)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / sampleRate)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := Compute(samples, sampleRate,
			WithSegmentLength(2048),
			WithWindow(window.TypeHann),
		)
		if err != nil {
			b.Fatal(err)
		}
	}
}
