package mavsim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAerosonde(t *testing.T) {
	p := Aerosonde()
	assert.Equal(t, "aerosonde", p.Name)
	assert.Equal(t, 11.0, p.Physical.Mass)
	assert.Equal(t, 0.12, p.Physical.Jxz)
	assert.Equal(t, 0.0658572, p.Propulsion.KQ)
	assert.Equal(t, -0.51, p.Lat.CellP)
	assert.Equal(t, 50.0, p.Long.M)
	assert.Equal(t, ElectricModel, p.Propulsion.Model)
	assert.Equal(t, -100.0, p.Initial.Down)
	assert.InDelta(t, 15.245, p.Geometry.AR(), 1e-3)

	s := p.Initial.State()
	assert.Equal(t, Vector3{0, 0, -100}, s.Position())
	assert.Equal(t, Vector3{25, 0, 0}, s.Velocity())
	assert.Equal(t, Quaternion{1, 0, 0, 0}, s.Attitude())
}

func TestParseAirframe(t *testing.T) {
	_, err := Airframe("concorde")
	assert.Error(t, err)

	_, err = ParseAirframe([]byte("name: typo\nphysical:\n  mas: 12\n"))
	assert.Error(t, err, "unknown keys must be rejected")

	_, err = ParseAirframe([]byte("name: empty\n"))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Aerosonde().Validate())
	for name, mod := range map[string]func(*Params){
		"mass":       func(p *Params) { p.Physical.Mass = 0 },
		"inertia":    func(p *Params) { p.Physical.Jxz = 2 },
		"chord":      func(p *Params) { p.Geometry.C = -0.1 },
		"model":      func(p *Params) { p.Propulsion.Model = "rocket" },
		"propeller":  func(p *Params) { p.Propulsion.D = 0 },
		"resistance": func(p *Params) { p.Propulsion.RMotor = 0 },
	} {
		p := Aerosonde()
		mod(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%s: expected invalid parameters, got %v", name, err)
		}
	}
	// The simple propeller ignores the motor constants.
	p := Aerosonde()
	p.Propulsion.Model = SimpleModel
	p.Propulsion.D = 0
	assert.NoError(t, p.Validate())
}

func TestCoupling(t *testing.T) {
	phys := Aerosonde().Physical
	γ := phys.Coupling()
	Γ := phys.Jx*phys.Jz - phys.Jxz*phys.Jxz
	assert.InDelta(t, phys.Jz/Γ, γ.G3, 1e-15)
	assert.InDelta(t, 1/phys.Jy, γ.InvJy, 1e-15)
	// Hand computed.
	assert.InDelta(t, 0.1211, γ.G1, 1e-4)
	assert.InDelta(t, 0.7749, γ.G2, 1e-4)
}
