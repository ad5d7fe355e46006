package mavsim

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSigma(t *testing.T) {
	aero := NewAerodynamics(Aerosonde())
	M, α0 := aero.Long.M, aero.Long.Alpha0
	for α := -0.6; α <= 0.6; α += 0.01 {
		num := 1 + math.Exp(-M*(α-α0)) + math.Exp(M*(α+α0))
		den := (1 + math.Exp(-M*(α-α0))) * (1 + math.Exp(M*(α+α0)))
		if σ := aero.Sigma(α); !scalar.EqualWithinAbs(σ, num/den, 1e-12) {
			t.Fatalf("σ(%f)=%f, expected %f", α, σ, num/den)
		}
	}
	if σ := aero.Sigma(0); σ > 1e-9 || σ < 0 {
		t.Fatalf("σ(0)=%g, expected ~0", σ)
	}
	for _, α := range []float64{-100, -math.Pi, math.Pi, 100} {
		if σ := aero.Sigma(α); !scalar.EqualWithinAbs(σ, 1, 1e-12) {
			t.Fatalf("σ(%f)=%f, expected 1", α, σ)
		}
	}
}

func TestLiftDragCoefficients(t *testing.T) {
	p := Aerosonde()
	aero := NewAerodynamics(p)
	if cl := aero.CL(0); !scalar.EqualWithinAbs(cl, p.Long.CL0, 1e-9) {
		t.Fatalf("CL(0)=%f", cl)
	}
	if cl := aero.CL(0.05); !scalar.EqualWithinAbs(cl, p.Long.CL0+p.Long.CLAlpha*0.05, 1e-9) {
		t.Fatalf("CL(0.05)=%f", cl)
	}
	// Flat plate past stall.
	if cl := aero.CL(math.Pi / 4); !scalar.EqualWithinAbs(cl, 1/math.Sqrt2, 1e-5) {
		t.Fatalf("CL(45°)=%f", cl)
	}
	if cl := aero.CL(-math.Pi / 4); !scalar.EqualWithinAbs(cl, -1/math.Sqrt2, 1e-5) {
		t.Fatalf("CL(-45°)=%f", cl)
	}
	ar := p.Geometry.B * p.Geometry.B / p.Geometry.S
	exp := p.Long.CDP + p.Long.CL0*p.Long.CL0/(math.Pi*p.Geometry.E*ar)
	if cd := aero.CD(0); !scalar.EqualWithinAbs(cd, exp, 1e-15) {
		t.Fatalf("CD(0)=%f, expected %f", cd, exp)
	}
}

func TestAeroForcesMoments(t *testing.T) {
	p := Aerosonde()
	aero := NewAerodynamics(p)
	level := Euler2Quaternion(0, 0, 0)
	cruise := AirData{Va: 25}

	fm := aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{}), cruise, Controls{})
	if !fm.IsFinite() {
		t.Fatalf("non finite forces at cruise: %s", fm)
	}
	qbar := 0.5 * p.Physical.Rho * 25 * 25 * p.Geometry.S
	if !scalar.EqualWithinAbs(fm.Fz, -qbar*aero.CL(0), 1e-9) || !scalar.EqualWithinAbs(fm.Fx, -qbar*aero.CD(0), 1e-9) {
		t.Fatalf("invalid lift or drag at zero α: %s", fm)
	}
	if fm.Fy != 0 || fm.L != 0 || fm.N != 0 {
		t.Fatalf("symmetric flight should have no lateral forces: %s", fm)
	}

	// Rate damping.
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{1, 0, 0}), cruise, Controls{})
	if fm.L >= 0 {
		t.Fatalf("positive roll rate should be damped: %s", fm)
	}
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{0, 0, 1}), cruise, Controls{})
	if fm.N >= 0 || fm.L <= 0 {
		t.Fatalf("positive yaw rate should be damped and roll the aircraft right: %s", fm)
	}
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{0, 1, 0}), cruise, Controls{})
	fm0 := aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{}), cruise, Controls{})
	if fm.M >= fm0.M {
		t.Fatalf("positive pitch rate should be damped: %s", fm)
	}

	// Static stability and control.
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{}), AirData{Va: 25, Alpha: 0.1}, Controls{})
	if fm.M >= 0 {
		t.Fatalf("positive α should pitch the nose down: %s", fm)
	}
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{}), cruise, Controls{Elevator: -0.2})
	if fm.M <= fm0.M {
		t.Fatalf("trailing edge up elevator should pitch the nose up: %s", fm)
	}
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{25, 0, 0}, level, Vector3{}), cruise, Controls{Aileron: 0.1, Throttle: 1})
	if fm.L <= 0 {
		t.Fatalf("positive aileron should roll right: %s", fm)
	}

	// Zero airspeed is degenerate.
	fm = aero.ForcesMoments(NewState(Vector3{}, Vector3{}, level, Vector3{}), AirData{}, Controls{})
	if fm.IsFinite() {
		t.Fatalf("expected non finite forces at zero airspeed: %s", fm)
	}
}

func TestGravity(t *testing.T) {
	mg := 11 * 9.81
	fm := Gravity(NewState(Vector3{}, Vector3{}, Euler2Quaternion(0, 0, 0), Vector3{}), 11, 9.81)
	// mass*g is not constant folded: compare with a tolerance.
	if !floats.EqualApprox([]float64{fm.Fx, fm.Fy, fm.Fz}, []float64{0, 0, mg}, 1e-12) || fm.Moment() != (Vector3{}) {
		t.Fatalf("level gravity: %s", fm)
	}
	fm = Gravity(NewState(Vector3{}, Vector3{}, Euler2Quaternion(0, math.Pi/2, 0), Vector3{}), 11, 9.81)
	if !floats.EqualApprox([]float64{fm.Fx, fm.Fy, fm.Fz}, []float64{-mg, 0, 0}, 1e-12) {
		t.Fatalf("nose up gravity: %s", fm)
	}
	fm = Gravity(NewState(Vector3{}, Vector3{}, Euler2Quaternion(math.Pi/2, 0, 0.3), Vector3{}), 11, 9.81)
	if !floats.EqualApprox([]float64{fm.Fx, fm.Fy, fm.Fz}, []float64{0, mg, 0}, 1e-12) {
		t.Fatalf("right wing down gravity: %s", fm)
	}
	for _, a := range attitudes {
		fm = Gravity(NewState(Vector3{}, Vector3{}, Euler2Quaternion(a[0], a[1], a[2]), Vector3{}), 11, 9.81)
		if !scalar.EqualWithinAbs(fm.Force().Norm(), mg, 1e-12) || fm.Moment() != (Vector3{}) {
			t.Fatalf("%v: gravity should only rotate the weight: %s", a, fm)
		}
	}
}
