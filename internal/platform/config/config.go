package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server captures HTTP server level configuration. Defaults keep main lean;
// everything is overridable through the environment.
type Server struct {
	Addr            string        `envconfig:"MEETSCHED_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"MEETSCHED_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"MEETSCHED_SHUTDOWN_TIMEOUT" default:"10s"`
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
