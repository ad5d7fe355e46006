package mavsim

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// GeoOrigin is the geodetic location of the origin of the NED frame.
type GeoOrigin struct {
	Lat, Lon float64 // degrees
	Alt      float64 // m above mean sea level
}

// Point returns the origin as an orb point.
func (g GeoOrigin) Point() orb.Point {
	return orb.Point{g.Lon, g.Lat}
}

// Position returns the latitude, longitude (degrees) and altitude (m MSL) of a true state.
// The NED frame is assumed flat, which is fine over the few kilometers of a flight test.
func (g GeoOrigin) Position(ts TrueState) (lat, lon, alt float64) {
	dist := math.Hypot(ts.North, ts.East)
	bearing := Rad2deg(math.Atan2(ts.East, ts.North))
	p := geo.PointAtBearingAndDistance(g.Point(), bearing, dist)
	return p.Lat(), p.Lon(), g.Alt + ts.Altitude
}

// Distance returns the great circle distance (m) between the origin and a true state.
func (g GeoOrigin) Distance(ts TrueState) float64 {
	lat, lon, _ := g.Position(ts)
	return geo.DistanceHaversine(g.Point(), orb.Point{lon, lat})
}
