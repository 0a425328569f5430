package window

import (
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeBoxcar Type = iota
	TypeTriang
	TypeBlackman
	TypeHamming
	TypeHann
	TypeBartlett
	TypeFlatTop
	TypeParzen
	TypeBohman
	TypeBlackmanHarris
	TypeNuttall
	TypeBarthann
	TypeKaiser
	TypeGaussian
	TypeGeneralGaussian
	TypeSlepian
	TypeDPSS
	TypeChebWin
	TypeExponential
	TypeTukey
)

var typeNames = map[string]Type{
	"boxcar":           TypeBoxcar,
	"triang":           TypeTriang,
	"blackman":         TypeBlackman,
	"hamming":          TypeHamming,
	"hann":             TypeHann,
	"bartlett":         TypeBartlett,
	"flattop":          TypeFlatTop,
	"parzen":           TypeParzen,
	"bohman":           TypeBohman,
	"blackmanharris":   TypeBlackmanHarris,
	"nuttall":          TypeNuttall,
	"barthann":         TypeBarthann,
	"kaiser":           TypeKaiser,
	"gaussian":         TypeGaussian,
	"general_gaussian": TypeGeneralGaussian,
	"slepian":          TypeSlepian,
	"dpss":             TypeDPSS,
	"chebwin":          TypeChebWin,
	"exponential":      TypeExponential,
	"tukey":            TypeTukey,
}

// Parse resolves a window identifier into a [Type].
//
// Identifiers are matched case-insensitively after trimming whitespace.
// Unknown identifiers return an error wrapping [ErrUnsupported].
func Parse(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if t, ok := typeNames[key]; ok {
		return t, nil
	}

	return 0, unsupported(name)
}

// Name returns the canonical identifier of a window type.
func (t Type) Name() string {
	for name, typ := range typeNames {
		if typ == t {
			return name
		}
	}

	return "unknown"
}

// Parameterized reports whether the window type requires a shape parameter.
func (t Type) Parameterized() bool {
	switch t {
	case TypeKaiser, TypeGaussian, TypeGeneralGaussian, TypeSlepian,
		TypeDPSS, TypeChebWin, TypeExponential, TypeTukey:
		return true
	default:
		return false
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	param    float64
	power    float64
	hasParam bool
	periodic bool

	// span is the sample-position denominator, filled in by Generate.
	span float64
}

// WithParam sets the primary shape parameter of a parametric window:
// kaiser beta, gaussian standard deviation (samples), general_gaussian
// width (samples), slepian main-lobe width (normalized frequency), dpss
// normalized half-bandwidth, chebwin sidelobe attenuation (dB),
// exponential decay constant (samples), tukey taper fraction.
func WithParam(v float64) Option {
	return func(c *config) {
		c.param = v
		c.hasParam = true
	}
}

// WithPower sets the exponent of the general_gaussian window.
func WithPower(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.power = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// defaultParam returns the shape parameter used when no [WithParam] option
// is supplied, so every type can be generated from its bare identifier.
func defaultParam(t Type, length int) float64 {
	switch t {
	case TypeKaiser:
		return 8.6
	case TypeGaussian:
		return float64(length) / 8
	case TypeGeneralGaussian:
		return float64(length) / 8
	case TypeSlepian:
		return 0.3
	case TypeDPSS:
		return 2.5
	case TypeChebWin:
		return 100
	case TypeExponential:
		return float64(length) / 8
	case TypeTukey:
		return 0.5
	default:
		return 0
	}
}

// Generate returns window coefficients of the given length.
//
// Without [WithParam], parametric types use the defaults documented on
// [WithParam] via defaultParam. Non-positive lengths return nil.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := config{power: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.hasParam {
		cfg.param = defaultParam(t, length)
	}

	// Types whose coefficients are not a pointwise function of position
	// are generated as whole arrays. Periodic form follows the usual
	// construction: symmetric window of length+1 with the last sample dropped.
	switch t {
	case TypeTriang, TypeChebWin, TypeDPSS, TypeSlepian:
		if cfg.periodic {
			return generateArray(t, length+1, cfg)[:length]
		}

		return generateArray(t, length, cfg)
	}

	cfg.span = float64(length - 1)
	if cfg.periodic {
		cfg.span = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// Boxcar returns all-ones coefficients.
func Boxcar(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeBoxcar, size, opts...), validateLength(size)
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

// Hamming returns Hamming window coefficients.
func Hamming(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHamming, size, opts...), validateLength(size)
}

// Blackman returns Blackman window coefficients.
func Blackman(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeBlackman, size, opts...), validateLength(size)
}

// BlackmanHarris returns 4-term Blackman-Harris window coefficients.
func BlackmanHarris(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeBlackmanHarris, size, opts...), validateLength(size)
}

// FlatTop returns 5-term flat-top window coefficients.
func FlatTop(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeFlatTop, size, opts...), validateLength(size)
}

// Kaiser returns Kaiser window coefficients.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if size <= 0 || beta < 0 {
		return nil, validateKaiser(size, beta)
	}

	return Generate(TypeKaiser, size, append(opts, WithParam(beta))...), nil
}

// Gaussian returns Gaussian window coefficients with the given standard
// deviation in samples.
func Gaussian(size int, std float64, opts ...Option) ([]float64, error) {
	if size <= 0 || std <= 0 {
		return nil, validateGaussian(size, std)
	}

	return Generate(TypeGaussian, size, append(opts, WithParam(std))...), nil
}

// GeneralGaussian returns generalized Gaussian coefficients with shape
// exponent power and width in samples.
func GeneralGaussian(size int, power, width float64, opts ...Option) ([]float64, error) {
	if size <= 0 || power <= 0 || width <= 0 {
		return nil, validateGeneralGaussian(size, power, width)
	}

	opts = append(opts, WithParam(width), WithPower(power))

	return Generate(TypeGeneralGaussian, size, opts...), nil
}

// Tukey returns Tukey window coefficients with the given taper fraction.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if size <= 0 || alpha < 0 || alpha > 1 {
		return nil, validateTukey(size, alpha)
	}

	return Generate(TypeTukey, size, append(opts, WithParam(alpha))...), nil
}

// Exponential returns exponential window coefficients with the given decay
// constant in samples.
func Exponential(size int, decay float64, opts ...Option) ([]float64, error) {
	if size <= 0 || decay <= 0 {
		return nil, validateExponential(size, decay)
	}

	return Generate(TypeExponential, size, append(opts, WithParam(decay))...), nil
}

// ChebWin returns Dolph-Chebyshev window coefficients with the given
// sidelobe attenuation in dB.
func ChebWin(size int, attenuationDB float64, opts ...Option) ([]float64, error) {
	if size <= 0 || attenuationDB <= 0 {
		return nil, validateChebWin(size, attenuationDB)
	}

	return Generate(TypeChebWin, size, append(opts, WithParam(attenuationDB))...), nil
}

// DPSS returns the principal discrete prolate spheroidal sequence for the
// given normalized half-bandwidth NW, scaled to unit peak.
func DPSS(size int, halfBandwidth float64, opts ...Option) ([]float64, error) {
	if size <= 0 || halfBandwidth <= 0 || halfBandwidth >= float64(size)/2 {
		return nil, validateDPSS(size, halfBandwidth)
	}

	return Generate(TypeDPSS, size, append(opts, WithParam(halfBandwidth))...), nil
}

// Slepian returns a Slepian window with the given main-lobe width as a
// fraction of the sampling frequency.
func Slepian(size int, width float64, opts ...Option) ([]float64, error) {
	if size <= 0 || width <= 0 || width >= 1 {
		return nil, validateSlepian(size, width)
	}

	return Generate(TypeSlepian, size, append(opts, WithParam(width))...), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeBoxcar:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case TypeNuttall:
		return cosineFromCoeffs(x, nuttallCoeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	case TypeParzen:
		return parzenAt(x)
	case TypeBohman:
		return bohmanAt(x)
	case TypeBarthann:
		return barthannAt(x)
	case TypeKaiser:
		return kaiserAt(x, cfg.param)
	case TypeTukey:
		return tukeyAt(x, cfg.param)
	case TypeGaussian:
		n := (x - 0.5) * cfg.span
		return math.Exp(-0.5 * (n / cfg.param) * (n / cfg.param))
	case TypeGeneralGaussian:
		n := (x - 0.5) * cfg.span
		return math.Exp(-0.5 * math.Pow(math.Abs(n/cfg.param), 2*cfg.power))
	case TypeExponential:
		n := (x - 0.5) * cfg.span
		return math.Exp(-math.Abs(n) / cfg.param)
	default:
		return 1
	}
}

func generateArray(t Type, length int, cfg config) []float64 {
	switch t {
	case TypeTriang:
		return triangArray(length)
	case TypeChebWin:
		return chebwinArray(length, cfg.param)
	case TypeDPSS:
		return dpssArray(length, cfg.param)
	case TypeSlepian:
		// The classic Slepian parameterization specifies the main-lobe
		// width as a fraction of the sampling frequency; NW = width*N/2.
		return dpssArray(length, cfg.param*float64(length)/2)
	default:
		return nil
	}
}

// triangArray returns a triangular window with non-zero endpoints, unlike
// the Bartlett window which tapers to zero.
func triangArray(m int) []float64 {
	out := make([]float64, m)
	if m == 1 {
		out[0] = 1
		return out
	}

	for n := 0; n <= (m-1)/2; n++ {
		var v float64
		if m%2 == 1 {
			v = 2 * float64(n+1) / float64(m+1)
		} else {
			v = (2*float64(n) + 1) / float64(m)
		}

		out[n] = v
		out[m-1-n] = v
	}

	return out
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func parzenAt(x float64) float64 {
	u := math.Abs(2*x - 1)
	if u <= 0.5 {
		return 1 - 6*u*u + 6*u*u*u
	}

	d := 1 - u

	return 2 * d * d * d
}

func bohmanAt(x float64) float64 {
	u := math.Abs(2*x - 1)
	if u >= 1 {
		return 0
	}

	return (1-u)*math.Cos(math.Pi*u) + math.Sin(math.Pi*u)/math.Pi
}

func barthannAt(x float64) float64 {
	u := math.Abs(x - 0.5)

	return 0.62 - 0.48*u + 0.38*math.Cos(2*math.Pi*u)
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
