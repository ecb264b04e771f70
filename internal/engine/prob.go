package engine

import (
	calcerr "github.com/thundergore/damage-calc/internal/errors"
)

// RerollMode selects which dice get re-rolled before a stage is scored.
type RerollMode string

const (
	RerollNone   RerollMode = "none"
	RerollOnes   RerollMode = "ones"
	RerollFailed RerollMode = "failed"
)

// Clamp bounds v into [lo, hi].
func Clamp(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ProbSuccessOn returns P(d6 >= target), with target clamped into [2,6]:
// a 6 always succeeds and nothing rolls better than a 2+.
func ProbSuccessOn(target int) float64 {
	t := Clamp(2, 6, target)
	return float64(7-t) / 6.0
}

// SuccessWithReroll returns the success probability after the re-roll policy
// is applied to a stage with baseline success probability p.
func SuccessWithReroll(p float64, mode RerollMode) (float64, error) {
	switch mode {
	case RerollNone:
		return p, nil
	case RerollFailed: // optimal play: reroll only fails
		return p + (1-p)*p, nil
	case RerollOnes:
		return p + p/6, nil
	default:
		return 0, calcerr.UnknownRerollModef("unknown reroll mode: %q", string(mode))
	}
}

// Nat6WithReroll returns the probability that the final kept die shows a
// natural 6. pBase is the success probability WITHOUT re-rolls; a "failed"
// policy re-rolls based on the original result, not the kept one.
func Nat6WithReroll(pBase float64, mode RerollMode) (float64, error) {
	const q6 = 1.0 / 6.0
	switch mode {
	case RerollNone:
		return q6, nil
	case RerollOnes:
		// first is 6, or first is 1 and the re-roll is 6
		return q6 + (1.0/6.0)*q6, nil
	case RerollFailed:
		// first is 6, or first fails and the re-roll is 6
		return q6 + (1-pBase)*q6, nil
	default:
		return 0, calcerr.UnknownRerollModef("unknown reroll mode: %q", string(mode))
	}
}
