package mavsim

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/google/uuid"
)

// Controller supplies the commands of each step.
type Controller interface {
	// Controls returns the commands for the step starting at t given the latest true state.
	Controls(t float64, ts TrueState) Controls
}

// ConstantControls is a Controller which always returns the same commands.
type ConstantControls Controls

// Controls implements the Controller interface.
func (c ConstantControls) Controls(t float64, ts TrueState) Controls {
	return Controls(c)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(t float64, ts TrueState) Controls

// Controls implements the Controller interface.
func (f ControllerFunc) Controls(t float64, ts TrueState) Controls {
	return f(t, ts)
}

// Segment holds commands from its start time (s) until the start of the next segment.
type Segment struct {
	Start float64
	Controls
}

// Schedule is a piecewise constant Controller. Segments must be sorted by start time;
// before the first segment the commands are zero.
type Schedule []Segment

// Controls implements the Controller interface.
func (s Schedule) Controls(t float64, ts TrueState) Controls {
	var δ Controls
	for _, seg := range s {
		if seg.Start > t {
			break
		}
		δ = seg.Controls
	}
	return δ
}

// Flight flies an aircraft for a given duration, pulling the commands and the wind of each step.
type Flight struct {
	ID               string
	Aircraft         *Aircraft
	Controller       Controller
	Wind             WindField
	Duration         float64 // s
	StatusEvery      float64 // s of simulation time between status logs, 0 to disable
	HaltOnDegenerate bool    // stop at the first degenerate step
	// Observer is called after each step, it may be nil.
	Observer func(t float64, ts TrueState)
	stopChan chan bool
	logger   kitlog.Logger
}

// NewFlight returns a new Flight. A nil wind field means calm air.
func NewFlight(ac *Aircraft, ctrl Controller, wind WindField, duration float64) *Flight {
	if wind == nil {
		wind = SteadyWind(Calm())
	}
	id := uuid.New().String()
	return &Flight{
		ID:          id,
		Aircraft:    ac,
		Controller:  ctrl,
		Wind:        wind,
		Duration:    duration,
		StatusEvery: 10,
		stopChan:    make(chan bool, 1),
		logger:      kitlog.With(ac.logger, "flight", id),
	}
}

// StopFlight is used to stop the flight before it is completed. Fly returns after the current step.
func (f *Flight) StopFlight() {
	select {
	case f.stopChan <- true:
	default:
	}
}

// Errors returned by Fly.
var (
	ErrStopped         = errors.New("flight stopped")
	ErrInvalidDuration = errors.New("flight duration must be finite and non negative")
)

// Fly propagates the aircraft until the duration is elapsed. It returns the number of steps taken
// and the first error encountered: a *DegenerateError (the flight continues unless HaltOnDegenerate),
// ErrStopped, or ErrInvalidDuration if the duration is negative, NaN or infinite.
func (f *Flight) Fly() (steps uint64, err error) {
	ac := f.Aircraft
	if f.Controller == nil {
		return 0, errors.New("flight has no controller")
	}
	if !(f.Duration >= 0) || math.IsInf(f.Duration, 1) {
		return 0, fmt.Errorf("%w (got %v)", ErrInvalidDuration, f.Duration)
	}
	start := ac.Time()
	// Rounded so that floating point accumulation does not add or drop the last step.
	total := uint64(math.Round(f.Duration / ac.Step()))
	nextStatus := start + f.StatusEvery
	wallStart := time.Now()
	f.logger.Log("level", "info", "subsys", "flight", "status", "started", "duration(s)", f.Duration, "steps", total)
	for steps < total {
		select {
		case <-f.stopChan:
			f.logger.Log("level", "notice", "subsys", "flight", "status", "stopped", "t", ac.Time())
			if err == nil {
				err = ErrStopped
			}
			return
		default:
		}
		t := ac.Time()
		ts := ac.TrueState()
		uerr := ac.Update(f.Controller.Controls(t, ts), f.Wind.Wind(t, ts))
		steps++
		if f.Observer != nil {
			f.Observer(ac.Time(), ac.TrueState())
		}
		if uerr != nil {
			if err == nil {
				err = uerr
			}
			if f.HaltOnDegenerate {
				f.logger.Log("level", "critical", "subsys", "flight", "status", "halted", "t", ac.Time(), "err", uerr)
				return
			}
		}
		if f.StatusEvery > 0 && ac.Time() >= nextStatus {
			ac.LogStatus()
			nextStatus += f.StatusEvery
		}
	}
	f.logger.Log("level", "notice", "subsys", "flight", "status", "finished", "steps", steps,
		"wall", time.Since(wallStart), "realtime", fmt.Sprintf("x%.1f", f.Duration/math.Max(time.Since(wallStart).Seconds(), 1e-9)))
	ac.LogStatus()
	return
}
