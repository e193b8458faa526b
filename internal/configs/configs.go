/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, the chat and admin listener ports, admin CORS
allowed origins, and the inbound line size limit.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// Environment selects development or production behavior (log format, CORS).
	Environment string

	// ChatHost is the interface the chat listener binds to.
	ChatHost string

	// ChatPort is the TCP port of the line-protocol chat listener.
	ChatPort int

	// AdminPort is the port of the admin HTTP API (health, room listing, WebSocket gateway).
	AdminPort int

	// AllowedOrigins lists the origins accepted by the admin API and WebSocket gateway.
	AllowedOrigins []string

	// MaxLineBytes caps the size of a single inbound protocol line.
	MaxLineBytes int
}

// ChatAddr returns the bind address of the chat listener in host:port form.
func (c *AppConfig) ChatAddr() string {
	return fmt.Sprintf("%s:%d", c.ChatHost, c.ChatPort)
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type
// conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// ChatHost
	cfg.ChatHost = os.Getenv("CHAT_HOST")
	if cfg.ChatHost == "" {
		cfg.ChatHost = "127.0.0.1"
	}

	// ChatPort
	chatPort, err := portFromEnv("CHAT_PORT", 34255)
	if err != nil {
		return nil, err
	}
	cfg.ChatPort = chatPort

	// AdminPort
	adminPort, err := portFromEnv("ADMIN_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.AdminPort = adminPort

	if cfg.ChatPort == cfg.AdminPort {
		return nil, fmt.Errorf("CHAT_PORT and ADMIN_PORT must differ, both are %d", cfg.ChatPort)
	}

	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// MaxLineBytes
	maxLineStr := os.Getenv("MAX_LINE_BYTES")
	if maxLineStr == "" {
		maxLineStr = "8192"
	}
	maxLine, err := strconv.Atoi(maxLineStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_LINE_BYTES environment variable: %w", err)
	}
	if maxLine < 64 {
		return nil, fmt.Errorf("MAX_LINE_BYTES %d is too small to carry a command line", maxLine)
	}
	cfg.MaxLineBytes = maxLine

	return cfg, nil
}

// portFromEnv parses a port number from the named environment variable,
// falling back to the given default and validating the unprivileged range.
func portFromEnv(name string, fallback int) (int, error) {
	portStr := os.Getenv(name)
	if portStr == "" {
		return fallback, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}

	if port < 1024 || port > 65535 {
		return 0, fmt.Errorf("port number %d for %s is outside the recommended range (1024-65535) to avoid privileged ports", port, name)
	}

	return port, nil
}
