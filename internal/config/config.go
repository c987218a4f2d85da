// Package config loads generator settings from config files and the
// environment.
package config

// Config holds all application configuration.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" validate:"required"`
	Batch     BatchConfig     `mapstructure:"batch" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
}

// GeneratorConfig bounds a single puzzle generation attempt.
type GeneratorConfig struct {
	Size                  int `mapstructure:"size" validate:"required,gte=3,lte=9"`
	MaxAttempts           int `mapstructure:"max_attempts" validate:"required,gte=1"`
	MaxDifficultyAttempts int `mapstructure:"max_difficulty_attempts" validate:"required,gte=1"`
	MaxCarveAttempts      int `mapstructure:"max_carve_attempts" validate:"required,gte=1"`
}

// BatchConfig controls corpus production runs.
type BatchConfig struct {
	Workers int    `mapstructure:"workers" validate:"gte=0"`
	Output  string `mapstructure:"output" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
