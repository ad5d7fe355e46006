package mavsim

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Wind is the ambient wind of a step: a steady component in the inertial (NED) frame
// and a gust component already expressed in the body frame. The zero value is calm.
type Wind struct {
	Steady Vector3 // m/s, NED
	Gust   Vector3 // m/s, body
}

// Calm returns a wind with zero velocity.
func Calm() Wind {
	return Wind{}
}

// NewWind returns a wind from the 6 element [wn, we, wd, ub, vb, wb] layout.
func NewWind(w [6]float64) Wind {
	return Wind{Steady: Vector3{w[0], w[1], w[2]}, Gust: Vector3{w[3], w[4], w[5]}}
}

// WindFromSpeedAndDir returns a horizontal steady wind of the given speed (m/s) blowing
// towards the given direction (radians clockwise from north).
func WindFromSpeedAndDir(speed, direction float64) Wind {
	s, c := math.Sincos(direction)
	return Wind{Steady: Vector3{speed * c, speed * s, 0}}
}

// WindField supplies the wind of each step.
type WindField interface {
	// Wind returns the wind to use for the step starting at t given the latest true state.
	Wind(t float64, ts TrueState) Wind
}

// SteadyWind is a WindField which never changes.
type SteadyWind Wind

// Wind implements the WindField interface.
func (w SteadyWind) Wind(t float64, ts TrueState) Wind {
	return Wind(w)
}

// Turbulence defines the intensities (m/s) and length scales (m) of the gusts.
type Turbulence struct {
	Su, Sv, Sw float64
	Lu, Lv, Lw float64
}

// Low altitude Dryden turbulence levels.
var (
	LightTurbulence    = Turbulence{Su: 1.06, Sv: 1.06, Sw: 0.7, Lu: 200, Lv: 200, Lw: 50}
	ModerateTurbulence = Turbulence{Su: 2.12, Sv: 2.12, Sw: 1.4, Lu: 200, Lv: 200, Lw: 50}
)

// minGustAirspeed avoids frozen gusts when the aircraft is (nearly) static.
const minGustAirspeed = 1.0

// GustField is a steady wind plus body frame gusts following a first order Gauss-Markov
// process on each axis, whose correlation time is the Dryden length scale over the airspeed.
type GustField struct {
	Steady Vector3
	turb   Turbulence
	dt     float64
	gust   Vector3
	noise  *distmv.Normal
}

// ErrBadTurbulence is returned when the turbulence intensities cannot form a covariance.
var ErrBadTurbulence = errors.New("turbulence intensities must be non negative and length scales positive")

// NewGustField returns a GustField sampled every dt seconds, seeded for reproducibility.
func NewGustField(steady Vector3, turb Turbulence, dt float64, seed uint64) (*GustField, error) {
	if turb.Su < 0 || turb.Sv < 0 || turb.Sw < 0 || !(turb.Lu > 0 && turb.Lv > 0 && turb.Lw > 0) {
		return nil, ErrBadTurbulence
	}
	// A tiny floor keeps the covariance positive definite when an axis is disabled.
	const floor = 1e-12
	sigma := mat.NewSymDense(3, []float64{
		math.Max(turb.Su*turb.Su, floor), 0, 0,
		0, math.Max(turb.Sv*turb.Sv, floor), 0,
		0, 0, math.Max(turb.Sw*turb.Sw, floor),
	})
	normal, ok := distmv.NewNormal([]float64{0, 0, 0}, sigma, newSplitMix(seed))
	if !ok {
		return nil, ErrBadTurbulence
	}
	return &GustField{Steady: steady, turb: turb, dt: dt, noise: normal}, nil
}

// Wind implements the WindField interface.
func (g *GustField) Wind(t float64, ts TrueState) Wind {
	va := math.Max(ts.Va, minGustAirspeed)
	n := g.noise.Rand(nil)
	scales := [3]float64{g.turb.Lu, g.turb.Lv, g.turb.Lw}
	for i, L := range scales {
		φ := math.Exp(-va * g.dt / L)
		g.gust[i] = φ*g.gust[i] + math.Sqrt(1-φ*φ)*n[i]
	}
	return Wind{Steady: g.Steady, Gust: g.gust}
}

// splitMix is a SplitMix64 generator used as the random source of the gusts.
// It implements Uint64 and Seed, which is what gonum's random sources require.
type splitMix struct {
	state uint64
}

func newSplitMix(seed uint64) *splitMix {
	return &splitMix{state: seed}
}

// Seed resets the generator.
func (s *splitMix) Seed(seed uint64) {
	s.state = seed
}

// Uint64 returns the next pseudo-random number.
func (s *splitMix) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
