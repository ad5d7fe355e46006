package mavsim

import (
	"errors"
	"strings"
)

// Degeneracy flags the physically degenerate conditions of a step. The model is not altered
// at those points: the numbers are still computed (and are usually not finite), but the
// condition is reported instead of silently propagating NaNs.
type Degeneracy uint8

const (
	// ZeroAirspeed means Va was zero when computing the aerodynamic forces.
	ZeroAirspeed Degeneracy = 1 << iota
	// NegativeDiscriminant means the motor speed equation had no real root.
	NegativeDiscriminant
	// ZeroQuaternionNorm means the attitude could not be normalized.
	ZeroQuaternionNorm
	// ZeroGroundSpeed means the flight path angle is undefined.
	ZeroGroundSpeed
	// NonFiniteState means the state contains NaN or Inf values after the step.
	NonFiniteState
)

// Sentinel errors usable with errors.Is on a DegenerateError.
var (
	ErrDegenerate         = errors.New("degenerate state")
	ErrZeroAirspeed       = errors.New("zero airspeed")
	ErrZeroQuaternionNorm = errors.New("zero quaternion norm")
	ErrZeroGroundSpeed    = errors.New("zero ground speed")
	ErrNonFiniteState     = errors.New("non finite state")
)

var (
	degeneracySentinels    = []error{ErrZeroAirspeed, ErrNegativeDiscriminant, ErrZeroQuaternionNorm, ErrZeroGroundSpeed, ErrNonFiniteState}
	degeneracyDescriptions = []string{"zero airspeed", "negative discriminant", "zero quaternion norm", "zero ground speed", "non finite state"}
)

// Has returns whether all the flags of o are set.
func (d Degeneracy) Has(o Degeneracy) bool {
	return d&o == o
}

func (d Degeneracy) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	for i, desc := range degeneracyDescriptions {
		if d&(1<<uint(i)) != 0 {
			parts = append(parts, desc)
		}
	}
	return strings.Join(parts, ", ")
}

// DegenerateError is returned by Aircraft.Update when the step went through a degenerate condition.
// The step is still completed.
type DegenerateError struct {
	Flags Degeneracy
	Time  float64 // simulation time at the end of the step, s
}

func (e *DegenerateError) Error() string {
	return "degenerate state (" + e.Flags.String() + ")"
}

// Unwrap returns ErrDegenerate and the sentinel of every flag set, for errors.Is.
func (e *DegenerateError) Unwrap() []error {
	errs := []error{ErrDegenerate}
	for i, sentinel := range degeneracySentinels {
		if e.Flags&(1<<uint(i)) != 0 {
			errs = append(errs, sentinel)
		}
	}
	return errs
}
