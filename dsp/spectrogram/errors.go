package spectrogram

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the waveform contains no samples.
	ErrEmptyInput = errors.New("waveform must not be empty")

	// ErrSampleRate is returned for non-positive sample rates.
	ErrSampleRate = errors.New("sample rate must be > 0")
)

func invalidSampleRate(sampleRate float64) error {
	return fmt.Errorf("%w: %f", ErrSampleRate, sampleRate)
}

func validateInput(samples []float64, sampleRate float64) error {
	if len(samples) == 0 {
		return ErrEmptyInput
	}
	if sampleRate <= 0 {
		return invalidSampleRate(sampleRate)
	}
	return nil
}
