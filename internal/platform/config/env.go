// Package config loads console settings from ASSETDECK_* environment
// variables and provides the fatal-exit helper shared by command entry
// points.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv populates target from environment variables. Console settings
// structs declare their ASSETDECK_* keys via env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
