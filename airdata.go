package mavsim

import (
	"fmt"
	"math"
)

// AirData is the velocity of the aircraft relative to the air mass.
type AirData struct {
	Va    float64 // airspeed, m/s
	Alpha float64 // angle of attack, rad
	Beta  float64 // sideslip, rad
}

func (a AirData) String() string {
	return fmt.Sprintf("Va=%.3f m/s α=%.3f° β=%.3f°", a.Va, Rad2deg(a.Alpha), Rad2deg(a.Beta))
}

// NewAirData computes the airspeed, angle of attack and sideslip of a state in the given wind.
// The steady wind is rotated into the body frame and the gust (already in the body frame) added.
// α uses atan (not atan2) and is zero when the longitudinal relative velocity is zero;
// β is zero when the airspeed is zero.
func NewAirData(s State, w Wind) (a AirData) {
	windBody := s.Rotation().T().MulVec(w.Steady).Add(w.Gust)
	rel := s.Velocity().Sub(windBody)
	ur, vr, wr := rel[0], rel[1], rel[2]
	a.Va = rel.Norm()
	if ur != 0 {
		a.Alpha = math.Atan(wr / ur)
	}
	if a.Va != 0 {
		a.Beta = math.Asin(vr / a.Va)
	}
	return
}
