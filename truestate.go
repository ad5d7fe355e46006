package mavsim

import (
	"fmt"
	"math"
)

// TrueState is the flat snapshot of the flight state consumed by autopilots and displays.
// Angles are in radians, distances in meters, speeds in m/s, rates in rad/s.
type TrueState struct {
	North, East, Altitude float64
	Va, Alpha, Beta       float64
	Phi, Theta, Psi       float64 // roll, pitch, yaw
	Vg                    float64 // ground speed
	Gamma                 float64 // flight path angle asin(-ṗd/Vg), positive when climbing (mavPySim uses asin(ṗd/Vg))
	Chi                   float64 // course angle
	P, Q, R               float64
	Wn, We                float64 // steady wind north and east
}

// NewTrueState derives the snapshot of a state. It is a pure function.
// The flight path angle is not finite when the ground speed is zero (see ZeroGroundSpeed).
func NewTrueState(s State, air AirData, w Wind) (ts TrueState) {
	ts.Phi, ts.Theta, ts.Psi = Quaternion2Euler(s.Attitude())
	pdot := s.Rotation().MulVec(s.Velocity())
	ts.North = s[iNorth]
	ts.East = s[iEast]
	ts.Altitude = -s[iDown]
	ts.Va, ts.Alpha, ts.Beta = air.Va, air.Alpha, air.Beta
	ts.Vg = pdot.Norm()
	ts.Gamma = math.Asin(-pdot[2] / ts.Vg)
	ts.Chi = math.Atan2(pdot[1], pdot[0])
	ts.P, ts.Q, ts.R = s[iP], s[iQ], s[iR]
	ts.Wn, ts.We = w.Steady[0], w.Steady[1]
	return
}

func (ts TrueState) String() string {
	return fmt.Sprintf("pos=(%.2f, %.2f) h=%.2f m Va=%.3f m/s α=%.2f° β=%.2f° φ=%.2f° θ=%.2f° ψ=%.2f° Vg=%.3f m/s γ=%.2f° χ=%.2f°",
		ts.North, ts.East, ts.Altitude, ts.Va, Rad2deg(ts.Alpha), Rad2deg(ts.Beta),
		Rad2deg(ts.Phi), Rad2deg(ts.Theta), Rad2deg(ts.Psi), ts.Vg, Rad2deg(ts.Gamma), Rad2deg(ts.Chi))
}
