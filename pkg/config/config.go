// Package config loads codeprompt settings from built-in defaults overlaid
// with CODEPROMPT_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override settings, e.g.
// CODEPROMPT_OUTPUT_FILE=prompt.txt.
const EnvPrefix = "CODEPROMPT_"

// Config holds the file locations and behaviour switches of a run.
type Config struct {
	IgnoreFile       string `koanf:"ignore_file" validate:"required"`
	OutputFile       string `koanf:"output_file" validate:"required"`
	TargetFiles      string `koanf:"target_files" validate:"required"`
	IndividualScript string `koanf:"individual_script" validate:"required"`
	Sentinel         string `koanf:"sentinel" validate:"required"`
	TokenEncoding    string `koanf:"token_encoding"`
	Debug            bool   `koanf:"debug"`
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		IgnoreFile:       "ignore_paths.txt",
		OutputFile:       "codebase_prompt.txt",
		TargetFiles:      "target_files.txt",
		IndividualScript: "individual_files.sh",
		Sentinel:         "done",
		TokenEncoding:    "cl100k_base",
	}
}

// Load returns the defaults overlaid with environment overrides, validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required setting is present.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// transformEnvKey maps CODEPROMPT_OUTPUT_FILE to output_file.
func transformEnvKey(key, value string) (string, any) {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
}
