package mavsim

// State is the 13 element rigid body state:
// [pn, pe, pd, u, v, w, e0, e1, e2, e3, p, q, r].
type State [13]float64

// Indexes in State.
const (
	iNorth = iota
	iEast
	iDown
	iU
	iV
	iW
	iE0
	iE1
	iE2
	iE3
	iP
	iQ
	iR
)

// NewState returns a state from NED position (m), body velocity (m/s), attitude and body rates (rad/s).
func NewState(pos, vel Vector3, att Quaternion, rates Vector3) (s State) {
	copy(s[iNorth:], pos[:])
	copy(s[iU:], vel[:])
	copy(s[iE0:], att[:])
	copy(s[iP:], rates[:])
	return
}

// Position returns the NED position.
func (s State) Position() Vector3 {
	return Vector3{s[iNorth], s[iEast], s[iDown]}
}

// Velocity returns the body frame velocity (u, v, w).
func (s State) Velocity() Vector3 {
	return Vector3{s[iU], s[iV], s[iW]}
}

// Attitude returns the attitude quaternion.
func (s State) Attitude() Quaternion {
	return Quaternion{s[iE0], s[iE1], s[iE2], s[iE3]}
}

// Rates returns the body rates (p, q, r).
func (s State) Rates() Vector3 {
	return Vector3{s[iP], s[iQ], s[iR]}
}

// Rotation returns the body to inertial rotation matrix of this state.
func (s State) Rotation() Matrix33 {
	return Quaternion2Rotation(s.Attitude())
}

// IsFinite returns whether every element of the state is finite.
func (s State) IsFinite() bool {
	return isFinite(s[:]...)
}
