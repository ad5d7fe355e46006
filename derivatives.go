package mavsim

// Derivatives returns the time derivative of the state for the given forces and moments:
// position kinematics, translational dynamics, quaternion kinematics and rotational dynamics.
// It has no side effects.
func Derivatives(s State, fm ForcesMoments, mass float64, γ Coupling) (d State) {
	u, v, w := s[iU], s[iV], s[iW]
	e0, e1, e2, e3 := s[iE0], s[iE1], s[iE2], s[iE3]
	p, q, r := s[iP], s[iQ], s[iR]

	// Position kinematics.
	posDot := s.Rotation().MulVec(Vector3{u, v, w})
	d[iNorth], d[iEast], d[iDown] = posDot[0], posDot[1], posDot[2]

	// Translational dynamics.
	d[iU] = r*v - q*w + fm.Fx/mass
	d[iV] = p*w - r*u + fm.Fy/mass
	d[iW] = q*u - p*v + fm.Fz/mass

	// Quaternion kinematics: 0.5 Ω(p, q, r) e.
	d[iE0] = 0.5 * (-p*e1 - q*e2 - r*e3)
	d[iE1] = 0.5 * (p*e0 + r*e2 - q*e3)
	d[iE2] = 0.5 * (q*e0 - r*e1 + p*e3)
	d[iE3] = 0.5 * (r*e0 + q*e1 - p*e2)

	// Rotational dynamics.
	d[iP] = γ.G1*p*q - γ.G2*q*r + γ.G3*fm.L + γ.G4*fm.N
	d[iQ] = γ.G5*p*r - γ.G6*(p*p-r*r) + γ.InvJy*fm.M
	d[iR] = γ.G7*p*q - γ.G1*q*r + γ.G4*fm.L + γ.G8*fm.N
	return
}
