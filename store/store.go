// Package store serializes spectrogram results into JSON documents and
// writes them to disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-spectrogram/dsp/spectrogram"
	"github.com/cwbudde/algo-spectrogram/stats/spectral"
)

// FeatureDocument is the array-serialized form of extracted features.
type FeatureDocument struct {
	SpectralCentroid []float64   `json:"spectral_centroid"`
	SpectralRolloff  []float64   `json:"spectral_rolloff"`
	MelSpectrogram   [][]float64 `json:"mel_spectrogram"`
}

// Document is the persisted form of a spectrogram result.
//
// In compressed form only ColorMesh is populated; the frequency and time
// axes are omitted from the JSON output entirely.
type Document struct {
	SampleFrequencies []float64        `json:"sample_frequencies,omitempty"`
	SampleTime        []float64        `json:"sample_time,omitempty"`
	ColorMesh         [][]float64      `json:"color_mesh"`
	Features          *FeatureDocument `json:"features,omitempty"`
}

// New builds a document from a result and optional features.
//
// With compressed true, only the intensity matrix is included. A nil
// features value simply omits the features key.
func New(res *spectrogram.Result, feats *spectral.Features, compressed bool) *Document {
	doc := &Document{ColorMesh: res.Intensity}

	if !compressed {
		doc.SampleFrequencies = res.Frequencies
		doc.SampleTime = res.Times
	}

	if feats != nil {
		doc.Features = &FeatureDocument{
			SpectralCentroid: feats.Centroid,
			SpectralRolloff:  feats.Rolloff,
			MelSpectrogram:   feats.MelSpectrogram,
		}
	}

	return doc
}

// Path returns the target file path for a folder and base name. The folder
// string is prepended as-is: no path separator is inserted, so a non-empty
// folder must already end with one.
func Path(folder, name string) string {
	return folder + name + ".json"
}

// Save writes the document as a single JSON file at Path(folder, name).
//
// A failed write returns a wrapped IO error; partial file contents are
// possible in that case and no cleanup is attempted.
func Save(doc *Document, folder, name string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	path := Path(folder, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}

	return nil
}

// Load reads a document back from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}

	return &doc, nil
}
