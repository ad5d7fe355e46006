package mavsim

import (
	"errors"
	"fmt"
	"math"
)

// Propulsion defines a propulsion model interface.
type Propulsion interface {
	// ThrustTorque returns the propeller thrust (N) along the body x axis and the propeller
	// torque (N m) for an airspeed and a throttle command in [0, 1].
	// The error is non nil when the model is degenerate at that point, in which case the
	// returned values are not finite.
	ThrustTorque(Va, throttle float64) (thrust, torque float64, err error)
}

// NewPropulsion returns the propulsion model selected by the parameters.
func NewPropulsion(p PropulsionParams, rho float64) (Propulsion, error) {
	switch p.Model {
	case "", ElectricModel:
		return &ElectricMotor{p, rho}, nil
	case SimpleModel:
		return &SimplePropeller{p, rho}, nil
	default:
		return nil, fmt.Errorf("%w: unknown propulsion model `%s`", ErrInvalidParams, p.Model)
	}
}

// ErrNegativeDiscriminant is returned when the motor speed equation has no real solution.
var ErrNegativeDiscriminant = errors.New("propeller speed: negative discriminant")

/* Available propulsion models */

// ElectricMotor is a DC motor driving a propeller whose thrust and torque coefficients
// are quadratic fits of the advance ratio (McLain's addendum to Beard & McLain).
type ElectricMotor struct {
	PropulsionParams
	rho float64
}

// Speed returns the operating propeller speed Ω (rad/s) where the motor torque balances
// the propeller torque. This is the "+" root of a quadratic in Ω. When the input voltage is
// too low to overcome the no-load current, the root is negative and the motor is stalled: zero is returned.
func (m *ElectricMotor) Speed(Va, throttle float64) (float64, error) {
	vIn := m.VMax * throttle
	twoPi2 := 4 * math.Pi * math.Pi
	D := m.D
	a := m.CQ0 * m.rho * math.Pow(D, 5) / twoPi2
	b := m.CQ1*m.rho*math.Pow(D, 4)*Va/twoPi2 + m.KQ*m.KQ/m.RMotor
	c := m.CQ2*m.rho*math.Pow(D, 3)*Va*Va - m.KQ*vIn/m.RMotor + m.KQ*m.I0
	Δ := b*b - 4*a*c
	if Δ < 0 {
		return math.NaN(), fmt.Errorf("%w (Va=%g, throttle=%g)", ErrNegativeDiscriminant, Va, throttle)
	}
	Ω := (-b + math.Sqrt(Δ)) / (2 * a)
	if Ω < 0 {
		return 0, nil
	}
	return Ω, nil
}

// ThrustTorque implements the Propulsion interface.
func (m *ElectricMotor) ThrustTorque(Va, throttle float64) (thrust, torque float64, err error) {
	Ω, err := m.Speed(Va, throttle)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	D := m.D
	if Ω == 0 {
		// Limit of the expressions below as n -> 0 (J -> ∞).
		return m.rho * D * D * m.CT2 * Va * Va, m.rho * math.Pow(D, 3) * m.CQ2 * Va * Va, nil
	}
	J := 2 * math.Pi * Va / (Ω * D) // advance ratio
	CT := m.CT2*J*J + m.CT1*J + m.CT0
	CQ := m.CQ2*J*J + m.CQ1*J + m.CQ0
	n := Ω / (2 * math.Pi) // rev/s
	thrust = m.rho * n * n * math.Pow(D, 4) * CT
	torque = m.rho * n * n * math.Pow(D, 5) * CQ
	return
}

// SimplePropeller is the first edition propeller model where the thrust is proportional to the
// difference between the squared prop wash speed and the squared airspeed.
type SimplePropeller struct {
	PropulsionParams
	rho float64
}

// ThrustTorque implements the Propulsion interface.
func (s *SimplePropeller) ThrustTorque(Va, throttle float64) (thrust, torque float64, err error) {
	wash := s.KMotor * throttle
	thrust = 0.5 * s.rho * s.SProp * s.CProp * (wash*wash - Va*Va)
	spin := s.KOmega * throttle
	torque = -s.KTP * spin * spin
	return
}
