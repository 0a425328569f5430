// Package spectrogram computes short-time Fourier magnitude-squared
// spectrograms of real-valued waveforms.
//
// The waveform is segmented into overlapping frames, each frame is
// detrended, shaped by a window function, and transformed with an FFT;
// the one-sided power of every frame forms one time column of the
// intensity matrix. Defaults follow the conventional offline spectrogram
// routine: 256-sample segments, 1/8 segment overlap, periodic
// tukey(0.25) window, constant detrend, and density scaling.
package spectrogram
