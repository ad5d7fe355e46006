package mavsim

import (
	"errors"
	"fmt"

	kitlog "github.com/go-kit/kit/log"
)

// Aircraft propagates the rigid body equations of motion of a fixed wing aircraft at a fixed step.
// It exclusively owns its state: separate aircraft share nothing and may be stepped from
// separate goroutines, but a given aircraft must not be used concurrently.
type Aircraft struct {
	Name     string
	params   Params
	step     float64 // s
	t        float64 // s
	coupling Coupling
	aero     Aerodynamics
	prop     Propulsion
	state    State
	wind     Wind // wind of the last step
	controls Controls
	fm       ForcesMoments // total forces and moments of the last step
	air      AirData
	truth    TrueState
	logger   kitlog.Logger
}

// NewAircraft returns an aircraft at the initial conditions of the parameters, stepped every
// `step` seconds. The air data is initialized in calm air. A nil logger disables logging.
func NewAircraft(p Params, step float64, logger kitlog.Logger) (*Aircraft, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("step size must be positive (got %v)", step)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	prop, err := NewPropulsion(p.Propulsion, p.Physical.Rho)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	a := &Aircraft{
		Name:     p.Name,
		params:   p,
		step:     step,
		coupling: p.Physical.Coupling(),
		aero:     NewAerodynamics(p),
		prop:     prop,
		state:    p.Initial.State(),
		logger:   kitlog.With(logger, "mav", p.Name),
	}
	a.refresh()
	a.logger.Log("level", "info", "subsys", "dyn", "step(s)", step, "state", a.truth)
	return a, nil
}

// Update integrates the equations of motion over one step with the given commands and wind,
// then refreshes the air data and the true state with that same wind.
// A *DegenerateError is returned if the step went through a degenerate condition, in which case
// the state has still been advanced and may contain non finite values.
func (a *Aircraft) Update(δ Controls, w Wind) error {
	fm, flags := a.forcesMoments(δ)
	next, err := Integrate(a.state, fm, a.step, a.params.Physical.Mass, a.coupling)
	if errors.Is(err, ErrZeroQuaternionNorm) {
		flags |= ZeroQuaternionNorm
	}
	a.state = next
	a.t += a.step
	a.wind = w
	a.controls = δ
	a.fm = fm
	flags |= a.refresh()
	return a.report(flags)
}

// forcesMoments returns the total forces and moments at the current state: aerodynamics,
// gravity, propeller thrust along x and propeller reaction torque about x.
func (a *Aircraft) forcesMoments(δ Controls) (ForcesMoments, Degeneracy) {
	var flags Degeneracy
	if a.air.Va == 0 {
		flags |= ZeroAirspeed
	}
	phys := a.params.Physical
	fm := a.aero.ForcesMoments(a.state, a.air, δ)
	fm = fm.Add(Gravity(a.state, phys.Mass, phys.Gravity))
	thrust, torque, err := a.prop.ThrustTorque(a.air.Va, δ.Throttle)
	if err != nil {
		flags |= NegativeDiscriminant
		a.logger.Log("level", "warning", "subsys", "prop", "t", a.t, "err", err)
	}
	fm = fm.Add(ForcesMoments{Fx: thrust, L: -torque})
	return fm, flags
}

// refresh recomputes the air data and the true state from the current state and wind.
func (a *Aircraft) refresh() (flags Degeneracy) {
	a.air = NewAirData(a.state, a.wind)
	a.truth = NewTrueState(a.state, a.air, a.wind)
	if a.truth.Vg == 0 {
		flags |= ZeroGroundSpeed
	}
	if !a.state.IsFinite() {
		flags |= NonFiniteState
	}
	return
}

func (a *Aircraft) report(flags Degeneracy) error {
	if flags == 0 {
		return nil
	}
	a.logger.Log("level", "warning", "subsys", "dyn", "t", a.t, "degenerate", flags)
	return &DegenerateError{Flags: flags, Time: a.t}
}

// SetState overrides the state, e.g. to start from a given trim or scenario. The air data and
// the true state are refreshed with the wind of the last step.
func (a *Aircraft) SetState(s State) error {
	a.state = s
	return a.report(a.refresh())
}

// SetWind changes the wind used by the air data and refreshes it, without propagating the state.
func (a *Aircraft) SetWind(w Wind) error {
	a.wind = w
	return a.report(a.refresh())
}

// LogStatus logs the current true state.
func (a *Aircraft) LogStatus() {
	a.logger.Log("level", "info", "subsys", "dyn", "t", a.t, "controls", a.controls, "state", a.truth)
}

// State returns the current state.
func (a *Aircraft) State() State {
	return a.state
}

// TrueState returns the snapshot of the current state.
func (a *Aircraft) TrueState() TrueState {
	return a.truth
}

// AirData returns the airspeed, angle of attack and sideslip of the current state.
func (a *Aircraft) AirData() AirData {
	return a.air
}

// Forces returns the total forces and moments used by the last step.
func (a *Aircraft) Forces() ForcesMoments {
	return a.fm
}

// Controls returns the commands of the last step.
func (a *Aircraft) Controls() Controls {
	return a.controls
}

// Wind returns the wind of the last step.
func (a *Aircraft) Wind() Wind {
	return a.wind
}

// Time returns the simulation time, i.e. the number of steps times the step size.
func (a *Aircraft) Time() float64 {
	return a.t
}

// Step returns the fixed step size in seconds.
func (a *Aircraft) Step() float64 {
	return a.step
}

// Params returns the parameters of this aircraft.
func (a *Aircraft) Params() Params {
	return a.params
}

func (a *Aircraft) String() string {
	return fmt.Sprintf("%s @ t=%.3fs: %s", a.Name, a.t, a.truth)
}
