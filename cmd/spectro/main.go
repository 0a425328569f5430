// Command spectro computes a spectrogram from a WAV file or a synthetic
// test tone, optionally extracts spectral features, and optionally writes
// the result as a JSON document.
//
// Usage:
//
//	spectro -in song.wav -window hann -out song -dir /tmp/
//	spectro -synth -featurize -out tone -compressed
//	spectro -in song.wav -archive ./archive
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/faiface/beep/wav"

	"github.com/cwbudde/algo-spectrogram/analyze"
	"github.com/cwbudde/algo-spectrogram/dsp/signal"
	"github.com/cwbudde/algo-spectrogram/store/archive"
)

func main() {
	in := flag.String("in", "", "input WAV file")
	synth := flag.Bool("synth", false, "use a synthetic 440 Hz tone (1 s at 22050 Hz) instead of a file")
	windowName := flag.String("window", "hann", "analysis window identifier")
	windowParam := flag.Float64("param", 0, "shape parameter for parametric windows (0 = default)")
	out := flag.String("out", "", "output document base name (empty = no file written)")
	dir := flag.String("dir", "", "output folder prefix, used verbatim (must end with a separator)")
	compressed := flag.Bool("compressed", false, "write only the intensity matrix")
	featurize := flag.Bool("featurize", false, "extract spectral features")
	archiveDir := flag.String("archive", "", "also record written documents in an archive at this path")
	verbose := flag.Bool("v", false, "print pipeline events")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spectro [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Computes a spectrogram from a WAV file or a synthetic tone.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*in, *synth, *windowName, *windowParam, *out, *dir,
		*compressed, *featurize, *archiveDir, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "spectro: %v\n", err)
		os.Exit(1)
	}
}

func run(in string, synth bool, windowName string, windowParam float64,
	out, dir string, compressed, featurize bool, archiveDir string, verbose bool,
) error {
	req := analyze.Request{
		Window:      windowName,
		WindowParam: windowParam,
		OutputName:  out,
		OutputDir:   dir,
		Compressed:  compressed,
		Featurize:   featurize,
	}

	switch {
	case synth:
		gen := signal.NewGenerator(22050)

		samples, err := gen.Sine(440, 1.0, 22050)
		if err != nil {
			return err
		}

		req.Samples = samples
		req.SampleRate = gen.SampleRate()
	case in != "":
		frames, sampleRate, err := loadWAV(in)
		if err != nil {
			return err
		}

		req.Frames = frames
		req.SampleRate = sampleRate
	default:
		return fmt.Errorf("either -in or -synth is required")
	}

	var opts []analyze.Option
	if verbose {
		opts = append(opts, analyze.WithObserver(func(ev analyze.Event) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ev.Stage, ev.Detail)
		}))
	}

	if archiveDir != "" {
		arch, err := archive.Open(archiveDir)
		if err != nil {
			return err
		}
		defer arch.Close()

		opts = append(opts, analyze.WithArchive(arch))
	}

	proc := analyze.New(opts...)
	if err := proc.Run(req); err != nil {
		return err
	}

	return printSummary(proc)
}

// loadWAV decodes a WAV file into frame-interleaved stereo samples.
// Mono files come back with both channels equal; only channel 0 is
// analyzed either way.
func loadWAV(path string) ([][2]float64, float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	defer stream.Close()

	var frames [][2]float64

	buf := make([][2]float64, 2048)
	for {
		n, ok := stream.Stream(buf)
		if n > 0 {
			frames = append(frames, buf[:n]...)
		}
		if !ok {
			break
		}
	}

	return frames, float64(format.SampleRate), nil
}

func printSummary(proc *analyze.Processor) error {
	res := proc.Result()
	if res == nil {
		return fmt.Errorf("no result computed")
	}

	peakFreq, peakTime := res.Peak()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "frequency bins\t%d\n", len(res.Frequencies))
	fmt.Fprintf(w, "time frames\t%d\n", len(res.Times))
	fmt.Fprintf(w, "nyquist\t%.1f Hz\n", res.Frequencies[len(res.Frequencies)-1])
	fmt.Fprintf(w, "peak\t%.1f Hz at %.3f s\n", peakFreq, peakTime)

	if feats := proc.Features(); feats != nil {
		fmt.Fprintf(w, "mean centroid\t%.1f Hz\n", mean(feats.Centroid))
		fmt.Fprintf(w, "mean roll-off\t%.1f Hz\n", mean(feats.Rolloff))
		fmt.Fprintf(w, "mel bands\t%d\n", len(feats.MelSpectrogram))
	}

	return w.Flush()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
