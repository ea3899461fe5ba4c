// Package seeds holds the bootstrap brands and users written into empty slots.
package seeds

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"agencydesk/internal/domain/brand"
	"agencydesk/internal/domain/user"
)

//go:embed fixtures/*.yaml
var fixtures embed.FS

// Brands returns the bootstrap brand set.
func Brands() ([]brand.Brand, error) {
	var out []brand.Brand
	if err := decode("fixtures/brands.yaml", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users returns the bootstrap user set.
func Users() ([]user.User, error) {
	var out []user.User
	if err := decode("fixtures/users.yaml", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(name string, into any) error {
	data, err := fixtures.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read seed %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to parse seed %s: %w", name, err)
	}
	return nil
}
