package window

import "math"

// dpssArray computes the principal discrete prolate spheroidal sequence of
// length m for normalized half-bandwidth nw, scaled to unit peak.
//
// The sequence is the dominant eigenvector of the symmetric tridiagonal
// matrix from the classic Slepian formulation. The dominant eigenvector is
// found by power iteration on the positively shifted matrix, which is
// robust and fast for window-sized problems.
func dpssArray(m int, nw float64) []float64 {
	if m == 1 {
		return []float64{1}
	}

	if nw <= 0 || nw >= float64(m)/2 {
		nw = 2.5
	}

	w := nw / float64(m)
	cosTwoPiW := math.Cos(2 * math.Pi * w)

	diag := make([]float64, m)
	off := make([]float64, m-1)

	half := float64(m-1) / 2
	for i := 0; i < m; i++ {
		d := half - float64(i)
		diag[i] = d * d * cosTwoPiW
	}

	for i := 0; i < m-1; i++ {
		off[i] = float64(i+1) * float64(m-1-i) / 2
	}

	// Gershgorin bound makes every eigenvalue of T+shift*I non-negative,
	// so power iteration converges to the algebraically largest one.
	shift := 0.0
	for i := 0; i < m; i++ {
		r := math.Abs(diag[i])
		if i > 0 {
			r += math.Abs(off[i-1])
		}
		if i < m-1 {
			r += math.Abs(off[i])
		}
		if r > shift {
			shift = r
		}
	}

	v := make([]float64, m)
	next := make([]float64, m)
	for i := range v {
		// Smooth positive start close to the expected bell shape.
		x := float64(i)/float64(m-1) - 0.5
		v[i] = math.Exp(-8 * x * x)
	}

	const (
		maxIterations = 400
		convergence   = 1e-14
	)

	prevLambda := 0.0
	for iter := 0; iter < maxIterations; iter++ {
		for i := 0; i < m; i++ {
			sum := (diag[i] + shift) * v[i]
			if i > 0 {
				sum += off[i-1] * v[i-1]
			}
			if i < m-1 {
				sum += off[i] * v[i+1]
			}
			next[i] = sum
		}

		norm := 0.0
		for _, x := range next {
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			break
		}

		for i := range next {
			v[i] = next[i] / norm
		}

		if math.Abs(norm-prevLambda) <= convergence*norm {
			break
		}
		prevLambda = norm
	}

	// Fix sign and scale to unit peak.
	peak := 0.0
	for _, x := range v {
		if math.Abs(x) > math.Abs(peak) {
			peak = x
		}
	}

	out := make([]float64, m)
	if peak != 0 {
		for i := range v {
			out[i] = v[i] / peak
		}
	}

	return out
}
