package mavsim

import (
	"errors"
	"fmt"
	"math"
)

// Params is the immutable set of physical, aerodynamic and propulsion constants of an airframe.
// It is passed by value to the aircraft at construction and never changed afterwards.
type Params struct {
	Name       string            `yaml:"name" mapstructure:"name"`
	Initial    InitialConditions `yaml:"initial" mapstructure:"initial"`
	Physical   Physical          `yaml:"physical" mapstructure:"physical"`
	Geometry   Geometry          `yaml:"geometry" mapstructure:"geometry"`
	Long       Longitudinal      `yaml:"longitudinal" mapstructure:"longitudinal"`
	Lat        Lateral           `yaml:"lateral" mapstructure:"lateral"`
	Propulsion PropulsionParams  `yaml:"propulsion" mapstructure:"propulsion"`
}

// InitialConditions of the state, angles in radians.
type InitialConditions struct {
	North float64 `yaml:"north" mapstructure:"north"`
	East  float64 `yaml:"east" mapstructure:"east"`
	Down  float64 `yaml:"down" mapstructure:"down"`
	U     float64 `yaml:"u" mapstructure:"u"`
	V     float64 `yaml:"v" mapstructure:"v"`
	W     float64 `yaml:"w" mapstructure:"w"`
	Phi   float64 `yaml:"phi" mapstructure:"phi"`
	Theta float64 `yaml:"theta" mapstructure:"theta"`
	Psi   float64 `yaml:"psi" mapstructure:"psi"`
	P     float64 `yaml:"p" mapstructure:"p"`
	Q     float64 `yaml:"q" mapstructure:"q"`
	R     float64 `yaml:"r" mapstructure:"r"`
}

// State returns the initial state vector.
func (ic InitialConditions) State() State {
	return NewState(Vector3{ic.North, ic.East, ic.Down},
		Vector3{ic.U, ic.V, ic.W},
		Euler2Quaternion(ic.Phi, ic.Theta, ic.Psi),
		Vector3{ic.P, ic.Q, ic.R})
}

// Physical holds the mass properties and the environment constants.
type Physical struct {
	Mass    float64 `yaml:"mass" mapstructure:"mass"` // kg
	Jx      float64 `yaml:"jx" mapstructure:"jx"`     // kg m^2
	Jy      float64 `yaml:"jy" mapstructure:"jy"`
	Jz      float64 `yaml:"jz" mapstructure:"jz"`
	Jxz     float64 `yaml:"jxz" mapstructure:"jxz"`
	Gravity float64 `yaml:"gravity" mapstructure:"gravity"` // m/s^2
	Rho     float64 `yaml:"rho" mapstructure:"rho"`         // kg/m^3
}

// Coupling are the inertia coupling coefficients of the rotational dynamics,
// valid for an airframe symmetric about its x-z plane.
type Coupling struct {
	G1, G2, G3, G4, G5, G6, G7, G8 float64
	InvJy                          float64
}

// Coupling returns the inertia coupling coefficients.
func (p Physical) Coupling() Coupling {
	Γ := p.Jx*p.Jz - p.Jxz*p.Jxz
	return Coupling{
		G1:    p.Jxz * (p.Jx - p.Jy + p.Jz) / Γ,
		G2:    (p.Jz*(p.Jz-p.Jy) + p.Jxz*p.Jxz) / Γ,
		G3:    p.Jz / Γ,
		G4:    p.Jxz / Γ,
		G5:    (p.Jz - p.Jx) / p.Jy,
		G6:    p.Jxz / p.Jy,
		G7:    ((p.Jx-p.Jy)*p.Jx + p.Jxz*p.Jxz) / Γ,
		G8:    p.Jx / Γ,
		InvJy: 1 / p.Jy,
	}
}

// Geometry of the wing.
type Geometry struct {
	S float64 `yaml:"s_wing" mapstructure:"s_wing"` // wing area, m^2
	B float64 `yaml:"b" mapstructure:"b"`           // wing span, m
	C float64 `yaml:"c" mapstructure:"c"`           // mean chord, m
	E float64 `yaml:"e" mapstructure:"e"`           // Oswald efficiency
}

// AR returns the aspect ratio b²/S.
func (g Geometry) AR() float64 {
	return g.B * g.B / g.S
}

// Longitudinal stability and control derivatives, and the stall model.
type Longitudinal struct {
	CL0      float64 `yaml:"c_l_0" mapstructure:"c_l_0"`
	CLAlpha  float64 `yaml:"c_l_alpha" mapstructure:"c_l_alpha"`
	CLQ      float64 `yaml:"c_l_q" mapstructure:"c_l_q"`
	CLDeltaE float64 `yaml:"c_l_delta_e" mapstructure:"c_l_delta_e"`
	CDP      float64 `yaml:"c_d_p" mapstructure:"c_d_p"`
	CDQ      float64 `yaml:"c_d_q" mapstructure:"c_d_q"`
	CDDeltaE float64 `yaml:"c_d_delta_e" mapstructure:"c_d_delta_e"`
	Cm0      float64 `yaml:"c_m_0" mapstructure:"c_m_0"`
	CmAlpha  float64 `yaml:"c_m_alpha" mapstructure:"c_m_alpha"`
	CmQ      float64 `yaml:"c_m_q" mapstructure:"c_m_q"`
	CmDeltaE float64 `yaml:"c_m_delta_e" mapstructure:"c_m_delta_e"`
	M        float64 `yaml:"m" mapstructure:"m"`           // stall blending sharpness
	Alpha0   float64 `yaml:"alpha0" mapstructure:"alpha0"` // stall angle, rad
}

// Lateral stability and control derivatives.
type Lateral struct {
	CY0        float64 `yaml:"c_y_0" mapstructure:"c_y_0"`
	CYBeta     float64 `yaml:"c_y_beta" mapstructure:"c_y_beta"`
	CYP        float64 `yaml:"c_y_p" mapstructure:"c_y_p"`
	CYR        float64 `yaml:"c_y_r" mapstructure:"c_y_r"`
	CYDeltaA   float64 `yaml:"c_y_delta_a" mapstructure:"c_y_delta_a"`
	CYDeltaR   float64 `yaml:"c_y_delta_r" mapstructure:"c_y_delta_r"`
	Cell0      float64 `yaml:"c_ell_0" mapstructure:"c_ell_0"`
	CellBeta   float64 `yaml:"c_ell_beta" mapstructure:"c_ell_beta"`
	CellP      float64 `yaml:"c_ell_p" mapstructure:"c_ell_p"`
	CellR      float64 `yaml:"c_ell_r" mapstructure:"c_ell_r"`
	CellDeltaA float64 `yaml:"c_ell_delta_a" mapstructure:"c_ell_delta_a"`
	CellDeltaR float64 `yaml:"c_ell_delta_r" mapstructure:"c_ell_delta_r"`
	Cn0        float64 `yaml:"c_n_0" mapstructure:"c_n_0"`
	CnBeta     float64 `yaml:"c_n_beta" mapstructure:"c_n_beta"`
	CnP        float64 `yaml:"c_n_p" mapstructure:"c_n_p"`
	CnR        float64 `yaml:"c_n_r" mapstructure:"c_n_r"`
	CnDeltaA   float64 `yaml:"c_n_delta_a" mapstructure:"c_n_delta_a"`
	CnDeltaR   float64 `yaml:"c_n_delta_r" mapstructure:"c_n_delta_r"`
}

// PropulsionParams selects and parametrizes the propulsion model.
type PropulsionParams struct {
	Model string `yaml:"model" mapstructure:"model"` // "electric" (default) or "simple"
	// Electric motor and propeller.
	VMax   float64 `yaml:"v_max" mapstructure:"v_max"`     // battery voltage, V
	D      float64 `yaml:"d_prop" mapstructure:"d_prop"`   // propeller diameter, m
	KQ     float64 `yaml:"kq" mapstructure:"kq"`           // motor torque constant, N m/A
	RMotor float64 `yaml:"r_motor" mapstructure:"r_motor"` // ohms
	I0     float64 `yaml:"i0" mapstructure:"i0"`           // no-load current, A
	CQ0    float64 `yaml:"c_q0" mapstructure:"c_q0"`
	CQ1    float64 `yaml:"c_q1" mapstructure:"c_q1"`
	CQ2    float64 `yaml:"c_q2" mapstructure:"c_q2"`
	CT0    float64 `yaml:"c_t0" mapstructure:"c_t0"`
	CT1    float64 `yaml:"c_t1" mapstructure:"c_t1"`
	CT2    float64 `yaml:"c_t2" mapstructure:"c_t2"`
	// Simple propeller.
	SProp  float64 `yaml:"s_prop" mapstructure:"s_prop"`
	CProp  float64 `yaml:"c_prop" mapstructure:"c_prop"`
	KMotor float64 `yaml:"k_motor" mapstructure:"k_motor"`
	KTP    float64 `yaml:"k_t_p" mapstructure:"k_t_p"`
	KOmega float64 `yaml:"k_omega" mapstructure:"k_omega"`
}

// Propulsion models.
const (
	ElectricModel = "electric"
	SimpleModel   = "simple"
)

// ErrInvalidParams is returned (wrapped) by Validate.
var ErrInvalidParams = errors.New("invalid airframe parameters")

// Validate checks that the parameters can be used to build an aircraft.
func (p Params) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"physical.mass", p.Physical.Mass},
		{"physical.jx", p.Physical.Jx},
		{"physical.jy", p.Physical.Jy},
		{"physical.jz", p.Physical.Jz},
		{"physical.rho", p.Physical.Rho},
		{"geometry.s_wing", p.Geometry.S},
		{"geometry.b", p.Geometry.B},
		{"geometry.c", p.Geometry.C},
		{"geometry.e", p.Geometry.E},
	}
	for _, v := range positive {
		if !(v.val > 0) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%w: %s must be positive (got %v)", ErrInvalidParams, v.name, v.val)
		}
	}
	if p.Physical.Jx*p.Physical.Jz-p.Physical.Jxz*p.Physical.Jxz <= 0 {
		return fmt.Errorf("%w: inertia tensor is not positive definite (Jx Jz <= Jxz²)", ErrInvalidParams)
	}
	switch p.Propulsion.Model {
	case "", ElectricModel:
		if !(p.Propulsion.D > 0) || p.Propulsion.RMotor == 0 || p.Propulsion.CQ0 == 0 {
			return fmt.Errorf("%w: electric propulsion needs d_prop > 0, r_motor != 0 and c_q0 != 0", ErrInvalidParams)
		}
	case SimpleModel:
	default:
		return fmt.Errorf("%w: unknown propulsion model `%s`", ErrInvalidParams, p.Propulsion.Model)
	}
	return nil
}
