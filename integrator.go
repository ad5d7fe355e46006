package mavsim

import (
	"gonum.org/v1/gonum/floats"
)

// RK4 advances x by one step of dt with the classical fourth order Runge-Kutta scheme.
// f must be autonomous: anything time dependent (such as the forces) is held by the caller.
func RK4(x State, dt float64, f func(State) State) State {
	var xt State
	k1 := f(x)
	floats.AddScaledTo(xt[:], x[:], dt/2, k1[:])
	k2 := f(xt)
	floats.AddScaledTo(xt[:], x[:], dt/2, k2[:])
	k3 := f(xt)
	floats.AddScaledTo(xt[:], x[:], dt, k3[:])
	k4 := f(xt)
	next := x
	for i := range next {
		next[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
	return next
}

// Integrate advances the state by dt with the forces and moments held constant over the four
// RK4 stages (they are computed once from the state at the start of the step), then
// normalizes the attitude quaternion.
func Integrate(x State, fm ForcesMoments, dt, mass float64, γ Coupling) (State, error) {
	next := RK4(x, dt, func(s State) State {
		return Derivatives(s, fm, mass, γ)
	})
	return Normalize(next)
}

// Normalize divides the quaternion of the state by its norm, leaving everything else untouched.
// The division happens even if the norm is zero, in which case ErrZeroQuaternionNorm is returned.
func Normalize(x State) (State, error) {
	e := x[iE0 : iE3+1]
	norm := floats.Norm(e, 2)
	floats.Scale(1/norm, e)
	if norm == 0 {
		return x, ErrZeroQuaternionNorm
	}
	return x, nil
}
