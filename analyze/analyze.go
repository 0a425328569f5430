// Package analyze orchestrates the spectrogram pipeline: transform,
// optional feature extraction, and optional persistence.
//
// A [Processor] retains the most recent result and feature bundle between
// runs. It is meant for one logical caller at a time; concurrent Run calls
// on the same Processor are not supported.
package analyze

import (
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/spectrogram"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
	"github.com/cwbudde/algo-spectrogram/stats/spectral"
	"github.com/cwbudde/algo-spectrogram/store"
	"github.com/cwbudde/algo-spectrogram/store/archive"
)

// Stage identifies a pipeline step in observer events.
type Stage int

const (
	StageTransform Stage = iota
	StageFeatures
	StagePersist
	StageArchive
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageTransform:
		return "transform"
	case StageFeatures:
		return "features"
	case StagePersist:
		return "persist"
	case StageArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Event is a structured status notification emitted after a pipeline
// stage completes.
type Event struct {
	Stage  Stage
	Detail string
}

// Observer receives pipeline events. Observers must not block.
type Observer func(Event)

// Request describes one pipeline invocation.
//
// Exactly one of Samples (mono) or Frames (two-channel, channel 0 used)
// must carry the waveform. Window selects the analysis window by
// identifier; empty selects the default. OutputName triggers persistence
// of the result to OutputDir (used verbatim as a path prefix).
type Request struct {
	Samples     []float64
	Frames      [][2]float64
	SampleRate  float64
	Window      string
	WindowParam float64
	OutputName  string
	OutputDir   string
	Compressed  bool
	Featurize   bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithObserver installs a status event callback.
func WithObserver(fn Observer) Option {
	return func(p *Processor) {
		p.observer = fn
	}
}

// WithArchive additionally records every persisted document in the given
// archive.
func WithArchive(a *archive.Store) Option {
	return func(p *Processor) {
		p.archive = a
	}
}

// WithTransformOptions forwards options to the spectrogram computation.
func WithTransformOptions(opts ...spectrogram.Option) Option {
	return func(p *Processor) {
		p.transformOpts = append(p.transformOpts, opts...)
	}
}

// WithFeatureOptions forwards options to feature extraction.
func WithFeatureOptions(opts ...spectral.Option) Option {
	return func(p *Processor) {
		p.featureOpts = append(p.featureOpts, opts...)
	}
}

// Processor runs the spectrogram pipeline and retains the most recent
// outputs.
type Processor struct {
	observer      Observer
	archive       *archive.Store
	transformOpts []spectrogram.Option
	featureOpts   []spectral.Option

	result   *spectrogram.Result
	features *spectral.Features
}

// New creates a configured Processor.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Result returns the most recent spectrogram result, or nil before the
// first successful run.
func (p *Processor) Result() *spectrogram.Result {
	return p.result
}

// Features returns the feature bundle of the most recent featurized run,
// or nil.
func (p *Processor) Features() *spectral.Features {
	return p.features
}

// Run executes the pipeline for one request.
//
// The transform always runs; features are extracted when req.Featurize is
// set; the document is written when req.OutputName is non-empty, including
// features only when this run extracted them. Any failure aborts the run
// and leaves previously retained state untouched.
func (p *Processor) Run(req Request) error {
	opts := p.transformOpts
	if req.Window != "" {
		winType, err := window.Parse(req.Window)
		if err != nil {
			return err
		}

		opts = append(opts[:len(opts):len(opts)], spectrogram.WithWindow(winType))
		if req.WindowParam != 0 {
			opts = append(opts, spectrogram.WithWindowParam(req.WindowParam))
		}
	}

	result, err := p.transform(req, opts)
	if err != nil {
		return err
	}

	var features *spectral.Features
	if req.Featurize {
		features, err = spectral.Extract(nil, result.Intensity, req.SampleRate, p.featureOpts...)
		if err != nil {
			return err
		}

		p.emit(Event{Stage: StageFeatures,
			Detail: fmt.Sprintf("%d frames", len(features.Centroid))})
	}

	p.result = result
	p.features = features

	if req.OutputName == "" {
		return nil
	}

	doc := store.New(result, features, req.Compressed)
	if err := store.Save(doc, req.OutputDir, req.OutputName); err != nil {
		return err
	}

	p.emit(Event{Stage: StagePersist, Detail: store.Path(req.OutputDir, req.OutputName)})

	if p.archive != nil {
		id, err := p.archive.Put(doc)
		if err != nil {
			return err
		}

		p.emit(Event{Stage: StageArchive, Detail: id})
	}

	return nil
}

func (p *Processor) transform(req Request, opts []spectrogram.Option) (*spectrogram.Result, error) {
	var (
		result *spectrogram.Result
		err    error
	)

	if len(req.Samples) > 0 {
		result, err = spectrogram.Compute(req.Samples, req.SampleRate, opts...)
	} else {
		result, err = spectrogram.ComputeFrames(req.Frames, req.SampleRate, opts...)
	}

	if err != nil {
		return nil, err
	}

	p.emit(Event{Stage: StageTransform,
		Detail: fmt.Sprintf("%d bins x %d frames", len(result.Frequencies), len(result.Times))})

	return result, nil
}

func (p *Processor) emit(ev Event) {
	if p.observer != nil {
		p.observer(ev)
	}
}
