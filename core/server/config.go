package server

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// PublicPaths are path prefixes served without the API key.
	PublicPaths []string `mapstructure:"public_paths" default:"/swagger"`
	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration `mapstructure:"read_timeout" default:"30s"`
	// WriteTimeout bounds writing a response. Imports answer once the job ends.
	WriteTimeout time.Duration `mapstructure:"write_timeout" default:"30m"`
}

// Validate checks that the port is a usable TCP port.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Port)
	}
	return nil
}
