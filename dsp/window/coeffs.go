package window

// Cosine-sum coefficient tables, evaluated as sum(c[k] * cos(2*pi*k*x)).

var (
	hannCoeffs    = []float64{0.5, -0.5}
	hammingCoeffs = []float64{0.54, -0.46}

	blackmanCoeffs = []float64{0.42, -0.5, 0.08}

	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}

	nuttallCoeffs = []float64{0.3635819, -0.4891775, 0.1365995, -0.0106411}

	flatTopCoeffs = []float64{
		0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368,
	}
)
