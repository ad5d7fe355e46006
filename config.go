package mavsim

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the path to an airframe override file.
const ConfigEnv = "MAVSIM_CONFIG"

// LoadParams reads an airframe file (TOML, YAML or JSON, guessed from the extension) on top of base.
// Only the keys present in the file override base. A top level `airframe` key selects the
// embedded preset to start from instead of base.
func LoadParams(path string, base Params) (Params, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	if name := v.GetString("airframe"); name != "" {
		preset, err := Airframe(name)
		if err != nil {
			return base, fmt.Errorf("%s: %w", path, err)
		}
		base = preset
	}
	p := base
	if err := v.Unmarshal(&p); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParamsFromEnv returns the Aerosonde parameters, overridden by the file in $MAVSIM_CONFIG if set.
func ParamsFromEnv() (Params, error) {
	path := os.Getenv(ConfigEnv)
	if path == "" {
		return Aerosonde(), nil
	}
	return LoadParams(path, Aerosonde())
}
