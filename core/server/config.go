package server

import (
	"fmt"
	"net"
	"strconv"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty binds all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
}

// Validate checks that the port is a usable TCP port number.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid server port %q: %w", c.Port, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}
	return nil
}

// Address returns the listen address in host:port form.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}
