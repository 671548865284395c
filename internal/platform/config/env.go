// Package config holds the environment and exit helpers shared by commands.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by the commands.
const EnvPrefix = "ADVANCEMENT_"

// ParseEnv loads configuration from environment variables.
//
// Struct tags name variables without the shared prefix; ParseEnv applies
// EnvPrefix so a field tagged `env:"DB_PATH"` reads ADVANCEMENT_DB_PATH.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
