package safety

import (
	"errors"
	"fmt"
)

// Tier is the age band a user is placed in. It controls vocabulary, response
// length and how strictly the content filter applies.
type Tier string

const (
	TierChild Tier = "child" // under 11
	TierTeen  Tier = "teen"  // 11 to 14
	TierAdult Tier = "adult" // 15 and up
)

// Plausible age bounds. Values outside are rejected, never clamped.
const (
	MinAge = 3
	MaxAge = 120
)

// ErrImplausibleAge signals an age outside [MinAge, MaxAge].
var ErrImplausibleAge = errors.New("implausible age")

// ResolveTier maps an age to its tier. Pure and deterministic; 11 and 15 are
// inclusive lower bounds of teen and adult.
func ResolveTier(age int) (Tier, error) {
	if age < MinAge || age > MaxAge {
		return "", fmt.Errorf("%w: %d", ErrImplausibleAge, age)
	}
	switch {
	case age < 11:
		return TierChild, nil
	case age < 15:
		return TierTeen, nil
	default:
		return TierAdult, nil
	}
}
