package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinesPath string // a .hcl file or a directory of them

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinesPath == "" {
		return nil, errors.New("PipelinesPath is a required configuration field and cannot be empty")
	}

	// Future validations for other fields can be added here.

	return &cfg, nil
}
