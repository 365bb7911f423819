package server

import (
	"os"
	"time"
)

const (
	DefaultAddr        = ":8080"
	DefaultReadTimeout = 10 * time.Second
	defaultRoot        = "files"
	defaultOutputDir   = "output"
)

// Config is fixed when the server starts and shared read-only by every
// connection.
type Config struct {
	// Root is the directory GET and HEAD requests are served from.
	Root string
	// OutputDir receives one timestamped directory per PUT or POST request.
	OutputDir string
	Addr      string
	// ReadTimeout bounds reading and answering each request on a connection.
	ReadTimeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		Root:        getenv("SERVER_ROOT", defaultRoot),
		OutputDir:   getenv("OUTPUT_DIR_NAME", defaultOutputDir),
		Addr:        getenv("SERVER_ADDR", DefaultAddr),
		ReadTimeout: DefaultReadTimeout,
	}
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = defaultRoot
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return c
}
