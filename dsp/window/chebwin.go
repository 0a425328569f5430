package window

import "math"

// chebwinArray computes a Dolph-Chebyshev window of length m with the given
// sidelobe attenuation in dB, normalized to unit peak.
//
// The window is obtained by sampling the order m-1 Chebyshev polynomial in
// the frequency domain and transforming back with a direct DFT. Window
// lengths are small, so the O(m^2) transform is not a concern.
func chebwinArray(m int, attenuationDB float64) []float64 {
	if m == 1 {
		return []float64{1}
	}

	order := float64(m - 1)
	ripple := math.Pow(10, math.Abs(attenuationDB)/20)
	beta := math.Cosh(math.Acosh(ripple) / order)

	p := make([]float64, m)
	for k := range p {
		x := beta * math.Cos(math.Pi*float64(k)/float64(m))
		p[k] = chebPoly(order, x)
	}

	out := make([]float64, m)

	if m%2 == 1 {
		// Odd length: real part of the DFT of p, re-centered.
		half := (m + 1) / 2

		w := make([]float64, half)
		for j := range w {
			sum := 0.0
			for k := range p {
				sum += p[k] * math.Cos(2*math.Pi*float64(j)*float64(k)/float64(m))
			}

			w[j] = sum
		}

		for j := 0; j < half; j++ {
			out[half-1+j] = w[j]
			out[half-1-j] = w[j]
		}
	} else {
		// Even length: half-sample phase shift before the transform.
		half := m / 2

		w := make([]float64, half+1)
		for j := range w {
			sum := 0.0
			for k := range p {
				angle := math.Pi * float64(k) * (1 - 2*float64(j)) / float64(m)
				sum += p[k] * math.Cos(angle)
			}

			w[j] = sum
		}

		for j := 1; j <= half; j++ {
			out[half-j] = w[j]
			out[half+j-1] = w[j]
		}
	}

	peak := 0.0
	for _, v := range out {
		if v > peak {
			peak = v
		}
	}

	if peak > 0 {
		for i := range out {
			out[i] /= peak
		}
	}

	return out
}

// chebPoly evaluates the Chebyshev polynomial T_order(x) extended beyond
// [-1, 1] via its hyperbolic form.
func chebPoly(order, x float64) float64 {
	switch {
	case x > 1:
		return math.Cosh(order * math.Acosh(x))
	case x < -1:
		sign := 1.0
		if math.Mod(order, 2) != 0 {
			sign = -1
		}

		return sign * math.Cosh(order*math.Acosh(-x))
	default:
		return math.Cos(order * math.Acos(x))
	}
}
