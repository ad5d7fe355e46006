package mavsim

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
)

// Vector3 is a fixed size 3x1 vector.
type Vector3 [3]float64

// Add returns v+o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v-o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns k*v.
func (v Vector3) Scale(k float64) Vector3 {
	return Vector3{k * v[0], k * v[1], k * v[2]}
}

// Dot returns the inner product.
func (v Vector3) Dot(o Vector3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v x o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0]}
}

// Norm returns the Euclidean norm of this vector.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns the unit vector, or the nil vector if the norm is zero.
func (v Vector3) Unit() Vector3 {
	n := v.Norm()
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return Vector3{}
	}
	return v.Scale(1 / n)
}

// sign returns the sign of a given number, and zero for zero (same as numpy.sign).
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// logistic is 1/(1+exp(-x)) without overflowing for large |x|.
func logistic(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// isFinite returns whether all the provided values are finite.
func isFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Deg2rad converts degrees to radians.
func Deg2rad(a float64) float64 {
	return a * deg2rad
}

// Rad2deg converts radians to degrees.
func Rad2deg(a float64) float64 {
	return a / deg2rad
}
