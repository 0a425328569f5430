package window

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestParseKnownNames(t *testing.T) {
	names := []string{
		"boxcar", "triang", "blackman", "hamming", "hann", "bartlett",
		"flattop", "parzen", "bohman", "blackmanharris", "nuttall",
		"barthann", "kaiser", "gaussian", "general_gaussian", "slepian",
		"dpss", "chebwin", "exponential", "tukey",
	}

	for _, name := range names {
		typ, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", name, err)
		}

		if got := typ.Name(); got != name {
			t.Fatalf("Parse(%q).Name(): got %q", name, got)
		}
	}
}

func TestParseNormalizesInput(t *testing.T) {
	typ, err := Parse("  Hann ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if typ != TypeHann {
		t.Fatalf("expected TypeHann, got %v", typ)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("welch")
	if err == nil {
		t.Fatal("expected error for unknown window name")
	}

	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for zero length")
	}

	if Generate(TypeHann, -4) != nil {
		t.Fatal("expected nil for negative length")
	}
}

func TestBoxcarAllOnes(t *testing.T) {
	coeffs := Generate(TypeBoxcar, 16)
	for i, v := range coeffs {
		if v != 1 {
			t.Fatalf("boxcar[%d]: got %f, want 1", i, v)
		}
	}
}

func TestSymmetry(t *testing.T) {
	types := []Type{
		TypeTriang, TypeBlackman, TypeHamming, TypeHann, TypeBartlett,
		TypeFlatTop, TypeParzen, TypeBohman, TypeBlackmanHarris,
		TypeNuttall, TypeBarthann, TypeKaiser, TypeGaussian,
		TypeGeneralGaussian, TypeSlepian, TypeDPSS, TypeChebWin,
		TypeExponential, TypeTukey,
	}

	for _, typ := range types {
		coeffs := Generate(typ, 65)

		n := len(coeffs)
		for i := 0; i < n/2; i++ {
			if !almostEqual(coeffs[i], coeffs[n-1-i], 1e-8) {
				t.Fatalf("%s: asymmetric at %d: %g vs %g",
					typ.Name(), i, coeffs[i], coeffs[n-1-i])
			}
		}
	}
}

func TestUnitPeak(t *testing.T) {
	types := []Type{
		TypeBoxcar, TypeTriang, TypeBlackman, TypeHamming, TypeHann,
		TypeBartlett, TypeParzen, TypeBohman, TypeBlackmanHarris,
		TypeBarthann, TypeKaiser, TypeGaussian, TypeGeneralGaussian,
		TypeSlepian, TypeDPSS, TypeChebWin, TypeExponential, TypeTukey,
	}

	for _, typ := range types {
		coeffs := Generate(typ, 65)

		peak := 0.0
		for _, v := range coeffs {
			if v > peak {
				peak = v
			}
		}

		if !almostEqual(peak, 1, 1e-6) {
			t.Fatalf("%s: peak %g, want 1", typ.Name(), peak)
		}
	}
}

func TestHannValues(t *testing.T) {
	coeffs, err := Hann(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if !almostEqual(coeffs[i], want[i], tolerance) {
			t.Fatalf("hann[%d]: got %g, want %g", i, coeffs[i], want[i])
		}
	}
}

func TestTriangEndpointsNonZero(t *testing.T) {
	coeffs := Generate(TypeTriang, 9)
	if coeffs[0] <= 0 || coeffs[len(coeffs)-1] <= 0 {
		t.Fatalf("triang endpoints must be non-zero: %g, %g",
			coeffs[0], coeffs[len(coeffs)-1])
	}

	bart := Generate(TypeBartlett, 9)
	if bart[0] != 0 || bart[len(bart)-1] != 0 {
		t.Fatalf("bartlett endpoints must be zero: %g, %g",
			bart[0], bart[len(bart)-1])
	}
}

func TestPeriodicForm(t *testing.T) {
	// Periodic window of length N matches the first N samples of the
	// symmetric window of length N+1.
	periodic := Generate(TypeHann, 8, WithPeriodic())
	symmetric := Generate(TypeHann, 9)

	for i := range periodic {
		if !almostEqual(periodic[i], symmetric[i], tolerance) {
			t.Fatalf("periodic[%d]: got %g, want %g", i, periodic[i], symmetric[i])
		}
	}
}

func TestTukeyExtremes(t *testing.T) {
	// Taper fraction 0 degenerates to boxcar, 1 to Hann.
	flat, err := Tukey(9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range flat {
		if v != 1 {
			t.Fatalf("tukey(0)[%d]: got %g, want 1", i, v)
		}
	}

	hannLike, err := Tukey(9, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hann := Generate(TypeHann, 9)
	for i := range hann {
		if !almostEqual(hannLike[i], hann[i], tolerance) {
			t.Fatalf("tukey(1)[%d]: got %g, want %g", i, hannLike[i], hann[i])
		}
	}
}

func TestConstructorValidation(t *testing.T) {
	if _, err := Kaiser(0, 8.6); err == nil {
		t.Fatal("expected error for zero-length kaiser")
	}

	if _, err := Kaiser(64, -1); err == nil {
		t.Fatal("expected error for negative kaiser beta")
	}

	if _, err := Tukey(64, 1.5); err == nil {
		t.Fatal("expected error for tukey alpha > 1")
	}

	if _, err := Gaussian(64, 0); err == nil {
		t.Fatal("expected error for zero gaussian std")
	}

	if _, err := GeneralGaussian(64, 0, 8); err == nil {
		t.Fatal("expected error for zero general_gaussian power")
	}

	if _, err := ChebWin(64, 0); err == nil {
		t.Fatal("expected error for zero chebwin attenuation")
	}

	if _, err := DPSS(64, 40); err == nil {
		t.Fatal("expected error for dpss half-bandwidth above size/2")
	}

	if _, err := Slepian(64, 2); err == nil {
		t.Fatal("expected error for slepian width above 1")
	}

	if _, err := Exponential(64, 0); err == nil {
		t.Fatal("expected error for zero exponential decay")
	}
}

func TestChebWinMonotoneMainLobe(t *testing.T) {
	coeffs, err := ChebWin(51, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mid := len(coeffs) / 2
	for i := 1; i <= mid; i++ {
		if coeffs[i]+tolerance < coeffs[i-1] {
			t.Fatalf("chebwin not monotone rising at %d: %g < %g",
				i, coeffs[i], coeffs[i-1])
		}
	}
}

func TestDPSSConcentration(t *testing.T) {
	coeffs, err := DPSS(128, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The principal sequence is positive and bell-shaped: the center must
	// dominate the edges by a wide margin.
	center := coeffs[len(coeffs)/2]
	edge := coeffs[0]

	if center <= 0 || edge <= 0 {
		t.Fatalf("dpss must be positive: center %g, edge %g", center, edge)
	}

	if center/edge < 100 {
		t.Fatalf("dpss concentration too weak: center %g, edge %g", center, edge)
	}
}

func TestGeneralGaussianReducesToGaussian(t *testing.T) {
	gg, err := GeneralGaussian(33, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, err := Gaussian(33, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range g {
		if !almostEqual(gg[i], g[i], tolerance) {
			t.Fatalf("general_gaussian(p=1)[%d]: got %g, want %g", i, gg[i], g[i])
		}
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{0.5, 0.5, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0.5, 1, 1.5}
	for i := range want {
		if !almostEqual(out[i], want[i], tolerance) {
			t.Fatalf("out[%d]: got %g, want %g", i, out[i], want[i])
		}
	}

	if _, err := ApplyCoefficients(samples, coeffs[:2]); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}
