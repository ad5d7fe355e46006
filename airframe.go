package mavsim

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed airframes/*.yaml
var airframes embed.FS

// ParseAirframe decodes a YAML airframe definition. Unknown keys are rejected so that
// a misspelled derivative does not silently default to zero.
func ParseAirframe(data []byte) (p Params, err error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&p); err != nil {
		return p, fmt.Errorf("airframe: %w", err)
	}
	return p, p.Validate()
}

// Airframe returns the embedded airframe preset of that name.
func Airframe(name string) (Params, error) {
	data, err := airframes.ReadFile("airframes/" + name + ".yaml")
	if err != nil {
		return Params{}, fmt.Errorf("unknown airframe `%s`", name)
	}
	return ParseAirframe(data)
}

// Aerosonde returns the parameters of the Aerosonde UAV.
func Aerosonde() Params {
	p, err := Airframe("aerosonde")
	if err != nil {
		panic(fmt.Errorf("embedded aerosonde airframe is broken: %s", err))
	}
	return p
}
