package spectral

import "math"

// HTK mel scale constants.
const (
	melBreakHz    = 700.0
	melLogScale   = 2595.0
)

func hzToMel(hz float64) float64 {
	return melLogScale * math.Log10(1+hz/melBreakHz)
}

func melToHz(mel float64) float64 {
	return melBreakHz * (math.Pow(10, mel/melLogScale) - 1)
}

// melFilterBank builds a triangular filter bank of melBands filters over
// binCount one-sided spectrum bins, spanning [fminHz, fmaxHz] on the mel
// scale. Each row holds the per-bin weights of one filter.
func melFilterBank(melBands, binCount int, sampleRate, fminHz, fmaxHz float64) [][]float64 {
	bank := make([][]float64, melBands)
	for m := range bank {
		bank[m] = make([]float64, binCount)
	}

	if melBands == 0 || binCount < 2 {
		return bank
	}

	melLo := hzToMel(fminHz)
	melHi := hzToMel(fmaxHz)

	// melBands filters need melBands+2 edge points.
	edges := make([]float64, melBands+2)
	for i := range edges {
		mel := melLo + (melHi-melLo)*float64(i)/float64(melBands+1)
		edges[i] = melToHz(mel)
	}

	for m := 0; m < melBands; m++ {
		lower := edges[m]
		center := edges[m+1]
		upper := edges[m+2]

		for k := 0; k < binCount; k++ {
			f := binFreq(k, sampleRate, binCount)

			switch {
			case f <= lower || f >= upper:
				// outside the triangle
			case f <= center:
				if center > lower {
					bank[m][k] = (f - lower) / (center - lower)
				}
			default:
				if upper > center {
					bank[m][k] = (upper - f) / (upper - center)
				}
			}
		}
	}

	return bank
}
