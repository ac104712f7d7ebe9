// Package bootstrap reads the one-time instance bootstrap file nexusd
// consults the first time it starts a brand-new data root: the initial
// superuser access key material, supplied up front so the supervisor
// can provision it non-interactively instead of printing it to the
// console on first start. Decoded with gopkg.in/yaml.v2's struct-tagged
// YAML decoding.
package bootstrap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Instance is the bootstrap document's shape.
type Instance struct {
	InitialSuperUserAccessKey string `yaml:"initial_super_user_access_key"`
}

// Load reads and decodes the YAML bootstrap file at path.
func Load(path string) (Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Instance{}, fmt.Errorf("bootstrap: reading %q: %w", path, err)
	}
	var inst Instance
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return Instance{}, fmt.Errorf("bootstrap: decoding %q: %w", path, err)
	}
	if inst.InitialSuperUserAccessKey == "" {
		return Instance{}, fmt.Errorf("bootstrap: %q is missing initial_super_user_access_key", path)
	}
	return inst, nil
}
