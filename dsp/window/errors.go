package window

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by [Parse] for identifiers outside the
// supported set.
var ErrUnsupported = errors.New("unsupported window")

var errMismatchedLength = errors.New("samples and coefficients must have same length")

func unsupported(name string) error {
	return fmt.Errorf("%w: %q", ErrUnsupported, name)
}

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if beta < 0 {
		return fmt.Errorf("kaiser beta must be >= 0: %f", beta)
	}
	return nil
}

func validateTukey(size int, alpha float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("tukey alpha must be in [0,1]: %f", alpha)
	}
	return nil
}

func validateGaussian(size int, std float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if std <= 0 {
		return fmt.Errorf("gaussian std must be > 0: %f", std)
	}
	return nil
}

func validateGeneralGaussian(size int, power, width float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if power <= 0 {
		return fmt.Errorf("general_gaussian power must be > 0: %f", power)
	}
	if width <= 0 {
		return fmt.Errorf("general_gaussian width must be > 0: %f", width)
	}
	return nil
}

func validateExponential(size int, decay float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if decay <= 0 {
		return fmt.Errorf("exponential decay must be > 0: %f", decay)
	}
	return nil
}

func validateChebWin(size int, attenuationDB float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if attenuationDB <= 0 {
		return fmt.Errorf("chebwin attenuation must be > 0 dB: %f", attenuationDB)
	}
	return nil
}

func validateDPSS(size int, halfBandwidth float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if halfBandwidth <= 0 || halfBandwidth >= float64(size)/2 {
		return fmt.Errorf("dpss half-bandwidth must be in (0, size/2): %f", halfBandwidth)
	}
	return nil
}

func validateSlepian(size int, width float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if width <= 0 || width >= 1 {
		return fmt.Errorf("slepian width must be in (0,1): %f", width)
	}
	return nil
}
