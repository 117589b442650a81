package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

// Config holds process-wide settings, resolved once from the environment.
type Config struct {
	DataDir  string `envconfig:"LISTAS_DATA_DIR" default:"data"`
	DBPath   string `envconfig:"LISTAS_DB_PATH" default:"listas.db"`
	LogLevel string `envconfig:"LISTAS_LOG_LEVEL" default:"info"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
