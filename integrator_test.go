package mavsim

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestRK4Exponential(t *testing.T) {
	decay := func(s State) (d State) {
		for i := range s {
			d[i] = -s[i]
		}
		return
	}
	x := State{1, 2}
	dt := 0.1
	for i := 1; i <= 10; i++ {
		x = RK4(x, dt, decay)
		exp := math.Exp(-dt * float64(i))
		if !scalar.EqualWithinAbs(x[0], exp, 1e-6) || !scalar.EqualWithinAbs(x[1], 2*exp, 2e-6) {
			t.Fatalf("step %d: %f != %f", i, x[0], exp)
		}
	}
	// One step agrees with the fourth order Taylor expansion.
	x = RK4(State{1}, dt, decay)
	if taylor := 1 - dt + dt*dt/2 - dt*dt*dt/6 + dt*dt*dt*dt/24; !scalar.EqualWithinAbs(x[0], taylor, 1e-15) {
		t.Fatalf("%.16f != %.16f", x[0], taylor)
	}
}

// rk4Reference integrates over dt with n sub steps.
func rk4Reference(x State, dt float64, n int, f func(State) State) State {
	for i := 0; i < n; i++ {
		x = RK4(x, dt/float64(n), f)
	}
	return x
}

func TestRK4Order(t *testing.T) {
	γ := Aerosonde().Physical.Coupling()
	fm := ForcesMoments{Fx: 10, Fz: -50, L: 1, M: 2, N: 0.5}
	f := func(s State) State {
		return Derivatives(s, fm, 11, γ)
	}
	x := NewState(Vector3{0, 0, -100}, Vector3{25, 1, 2}, Euler2Quaternion(0.1, 0.05, 0.3), Vector3{0.5, 0.3, 0.2})
	var errs []float64
	for _, dt := range []float64{0.1, 0.05, 0.025} {
		step := RK4(x, dt, f)
		ref := rk4Reference(x, dt, 1000, f)
		errs = append(errs, floats.Distance(step[:], ref[:], 2))
	}
	// The local truncation error is O(dt^5): halving the step divides it by ~32.
	for i := 1; i < len(errs); i++ {
		if ratio := errs[i-1] / errs[i]; ratio < 24 || ratio > 40 {
			t.Fatalf("error ratio %f (errors: %v)", ratio, errs)
		}
	}
}

func TestNormalize(t *testing.T) {
	s := NewState(Vector3{1, 2, 3}, Vector3{4, 5, 6}, Quaternion{2, 0, 0, 0}, Vector3{7, 8, 9})
	n, err := Normalize(s)
	if err != nil {
		t.Fatal(err)
	}
	if n.Attitude() != (Quaternion{1, 0, 0, 0}) {
		t.Fatalf("invalid normalization: %v", n.Attitude())
	}
	if n.Position() != s.Position() || n.Velocity() != s.Velocity() || n.Rates() != s.Rates() {
		t.Fatal("normalization changed more than the quaternion")
	}
	n, err = Normalize(NewState(Vector3{}, Vector3{}, Quaternion{}, Vector3{}))
	if !errors.Is(err, ErrZeroQuaternionNorm) {
		t.Fatalf("expected a zero norm error, got %v", err)
	}
	if !math.IsNaN(n[iE0]) {
		t.Fatalf("expected a NaN quaternion, got %v", n.Attitude())
	}
}

func TestIntegrateNorm(t *testing.T) {
	γ := Aerosonde().Physical.Coupling()
	x := NewState(Vector3{}, Vector3{25, 0, 0}, Euler2Quaternion(0.2, 0.1, -0.4), Vector3{1.5, -0.8, 2})
	fm := ForcesMoments{Fx: 1}
	var err error
	for i := 0; i < 1000; i++ {
		if x, err = Integrate(x, fm, 0.05, 11, γ); err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinAbs(x.Attitude().Norm(), 1, 1e-9) {
			t.Fatalf("step %d: |q|=%.12f", i, x.Attitude().Norm())
		}
	}
}
