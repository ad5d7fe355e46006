package mavsim

import "math"

// Matrix33 is a fixed size 3x3 matrix, row major.
type Matrix33 [3][3]float64

// MulVec returns m*v.
func (m Matrix33) MulVec(v Vector3) (o Vector3) {
	for i := 0; i < 3; i++ {
		o[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return
}

// Mul returns m*n.
func (m Matrix33) Mul(n Matrix33) (o Matrix33) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return
}

// T returns the transpose, which is also the inverse of a rotation matrix.
func (m Matrix33) T() (o Matrix33) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[i][j] = m[j][i]
		}
	}
	return
}

// R1 rotation about the 1st axis.
func R1(x float64) Matrix33 {
	s, c := math.Sincos(x)
	return Matrix33{{1, 0, 0}, {0, c, s}, {0, -s, c}}
}

// R2 rotation about the 2nd axis.
func R2(x float64) Matrix33 {
	s, c := math.Sincos(x)
	return Matrix33{{c, 0, -s}, {0, 1, 0}, {s, 0, c}}
}

// R3 rotation about the 3rd axis.
func R3(x float64) Matrix33 {
	s, c := math.Sincos(x)
	return Matrix33{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
}

// Euler2Rotation returns the body to inertial (NED) rotation for a 3-2-1 sequence,
// i.e. (R1(φ)R2(θ)R3(ψ))^T.
func Euler2Rotation(φ, θ, ψ float64) Matrix33 {
	return R1(φ).Mul(R2(θ)).Mul(R3(ψ)).T()
}

// Quaternion is a scalar first attitude quaternion (e0, e1, e2, e3).
type Quaternion [4]float64

// Norm returns the Euclidean norm of the quaternion.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

// Euler2Quaternion converts roll, pitch and yaw (3-2-1) to a unit quaternion.
func Euler2Quaternion(φ, θ, ψ float64) Quaternion {
	sφ, cφ := math.Sincos(φ / 2)
	sθ, cθ := math.Sincos(θ / 2)
	sψ, cψ := math.Sincos(ψ / 2)
	return Quaternion{
		cψ*cθ*cφ + sψ*sθ*sφ,
		cψ*cθ*sφ - sψ*sθ*cφ,
		cψ*sθ*cφ + sψ*cθ*sφ,
		sψ*cθ*cφ - cψ*sθ*sφ,
	}
}

// Quaternion2Euler returns roll, pitch and yaw (3-2-1) from a unit quaternion.
// Pitch is limited to [-π/2, π/2].
func Quaternion2Euler(q Quaternion) (φ, θ, ψ float64) {
	e0, e1, e2, e3 := q[0], q[1], q[2], q[3]
	φ = math.Atan2(2*(e0*e1+e2*e3), e0*e0+e3*e3-e1*e1-e2*e2)
	sθ := 2 * (e0*e2 - e1*e3)
	// Rounding may push this just outside of the asin domain at ±90°.
	sθ = math.Max(-1, math.Min(1, sθ))
	θ = math.Asin(sθ)
	ψ = math.Atan2(2*(e0*e3+e1*e2), e0*e0+e1*e1-e2*e2-e3*e3)
	return
}

// Quaternion2Rotation returns the body to inertial (NED) rotation matrix of a unit quaternion.
func Quaternion2Rotation(q Quaternion) Matrix33 {
	e0, e1, e2, e3 := q[0], q[1], q[2], q[3]
	return Matrix33{
		{e1*e1 + e0*e0 - e2*e2 - e3*e3, 2 * (e1*e2 - e3*e0), 2 * (e1*e3 + e2*e0)},
		{2 * (e1*e2 + e3*e0), e2*e2 + e0*e0 - e1*e1 - e3*e3, 2 * (e2*e3 - e1*e0)},
		{2 * (e1*e3 - e2*e0), 2 * (e2*e3 + e1*e0), e3*e3 + e0*e0 - e1*e1 - e2*e2},
	}
}
