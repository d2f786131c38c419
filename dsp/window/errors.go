package window

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}

	return nil
}

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return validateLength(size)
	}

	if beta < 0 {
		return fmt.Errorf("window: kaiser beta must be >= 0: %f", beta)
	}

	return nil
}
