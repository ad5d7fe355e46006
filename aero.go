package mavsim

import (
	"fmt"
	"math"
)

// Controls are the commands of a step. Deflections are dimensionless (radians for the
// Aerosonde derivatives) and the throttle is in [0, 1]. No bounds are enforced.
type Controls struct {
	Aileron, Elevator, Rudder float64
	Throttle                  float64
}

func (c Controls) String() string {
	return fmt.Sprintf("δa=%.4f δe=%.4f δr=%.4f δt=%.3f", c.Aileron, c.Elevator, c.Rudder, c.Throttle)
}

// ForcesMoments are the forces (N) and moments (N m) acting on the airframe, in the body frame.
type ForcesMoments struct {
	Fx, Fy, Fz float64
	L, M, N    float64
}

// Force returns (Fx, Fy, Fz).
func (f ForcesMoments) Force() Vector3 {
	return Vector3{f.Fx, f.Fy, f.Fz}
}

// Moment returns (L, M, N).
func (f ForcesMoments) Moment() Vector3 {
	return Vector3{f.L, f.M, f.N}
}

// Add returns the sum of both force and moment sets.
func (f ForcesMoments) Add(o ForcesMoments) ForcesMoments {
	return ForcesMoments{f.Fx + o.Fx, f.Fy + o.Fy, f.Fz + o.Fz, f.L + o.L, f.M + o.M, f.N + o.N}
}

// IsFinite returns whether all components are finite.
func (f ForcesMoments) IsFinite() bool {
	return isFinite(f.Fx, f.Fy, f.Fz, f.L, f.M, f.N)
}

func (f ForcesMoments) String() string {
	return fmt.Sprintf("F=(%.3f, %.3f, %.3f) N M=(%.3f, %.3f, %.3f) Nm", f.Fx, f.Fy, f.Fz, f.L, f.M, f.N)
}

// Aerodynamics computes the aerodynamic forces and moments of an airframe.
type Aerodynamics struct {
	Geometry
	Long Longitudinal
	Lat  Lateral
	rho  float64
	ar   float64
}

// NewAerodynamics returns the aerodynamic model of these parameters.
func NewAerodynamics(p Params) Aerodynamics {
	return Aerodynamics{p.Geometry, p.Long, p.Lat, p.Physical.Rho, p.Geometry.AR()}
}

// Sigma is the blending function between the linear lift model (0) and the
// flat plate model past stall (1):
//
//	σ(α) = [1 + e^(-M(α-α0)) + e^(M(α+α0))] / ([1 + e^(-M(α-α0))][1 + e^(M(α+α0))])
//
// which is evaluated as 1 - logistic(-M(α-α0)) logistic(M(α+α0)) so that no exponential overflows.
func (a Aerodynamics) Sigma(α float64) float64 {
	return 1 - logistic(-a.Long.M*(α-a.Long.Alpha0))*logistic(a.Long.M*(α+a.Long.Alpha0))
}

// CL returns the lift coefficient, blended with the flat plate model past stall.
func (a Aerodynamics) CL(α float64) float64 {
	σ := a.Sigma(α)
	sα, cα := math.Sincos(α)
	return (1-σ)*(a.Long.CL0+a.Long.CLAlpha*α) + σ*2*sign(α)*sα*sα*cα
}

// CD returns the drag coefficient from the parabolic drag polar.
func (a Aerodynamics) CD(α float64) float64 {
	cl := a.Long.CL0 + a.Long.CLAlpha*α
	return a.Long.CDP + cl*cl/(math.Pi*a.E*a.ar)
}

// ForcesMoments returns the aerodynamic forces and moments for the state, its air data and
// the control deflections. The throttle is ignored here. The rate terms divide by the
// airspeed, so a zero airspeed yields non finite values.
func (a Aerodynamics) ForcesMoments(s State, air AirData, δ Controls) ForcesMoments {
	p, q, r := s[iP], s[iQ], s[iR]
	α, β, Va := air.Alpha, air.Beta, air.Va
	qbar := 0.5 * a.rho * Va * Va * a.S
	cq := a.C / (2 * Va) // normalizes q
	bq := a.B / (2 * Va) // normalizes p and r

	lift := qbar * (a.CL(α) + a.Long.CLQ*cq*q + a.Long.CLDeltaE*δ.Elevator)
	drag := qbar * (a.CD(α) + a.Long.CDQ*cq*q + a.Long.CDDeltaE*δ.Elevator)
	sα, cα := math.Sincos(α)

	lat := a.Lat
	return ForcesMoments{
		Fx: -drag*cα + lift*sα,
		Fy: qbar * (lat.CY0 + lat.CYBeta*β + lat.CYP*bq*p + lat.CYR*bq*r + lat.CYDeltaA*δ.Aileron + lat.CYDeltaR*δ.Rudder),
		Fz: -drag*sα - lift*cα,
		L:  qbar * a.B * (lat.Cell0 + lat.CellBeta*β + lat.CellP*bq*p + lat.CellR*bq*r + lat.CellDeltaA*δ.Aileron + lat.CellDeltaR*δ.Rudder),
		M:  qbar * a.C * (a.Long.Cm0 + a.Long.CmAlpha*α + a.Long.CmQ*cq*q + a.Long.CmDeltaE*δ.Elevator),
		N:  qbar * a.B * (lat.Cn0 + lat.CnBeta*β + lat.CnP*bq*p + lat.CnR*bq*r + lat.CnDeltaA*δ.Aileron + lat.CnDeltaR*δ.Rudder),
	}
}

// Gravity returns the weight of the aircraft rotated into the body frame.
func Gravity(s State, mass, g float64) ForcesMoments {
	fg := s.Rotation().T().MulVec(Vector3{0, 0, mass * g})
	return ForcesMoments{Fx: fg[0], Fy: fg[1], Fz: fg[2]}
}
