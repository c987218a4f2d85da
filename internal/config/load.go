package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file and from environment
// variables with the ARITHMATRIX_ prefix. Environment variables take
// precedence over file values, and both override the built-in defaults.
// path may be empty, in which case arithmatrix.yaml is searched for in the
// working directory and missing files are not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("generator.size", 4)
	v.SetDefault("generator.max_attempts", 100)
	v.SetDefault("generator.max_difficulty_attempts", 20)
	v.SetDefault("generator.max_carve_attempts", 500)
	v.SetDefault("batch.workers", 0)
	v.SetDefault("batch.output", "puzzles.jsonl")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("arithmatrix")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ARITHMATRIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
