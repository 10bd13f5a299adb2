package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mcoot/connectfour/internal/services/game"
)

// Config holds server settings read from the environment
type Config struct {
	Host        string
	Port        int
	LogLevel    slog.Level
	BoardWidth  int
	BoardHeight int
	// StaticDir overrides the static asset directory; empty means search
	// the usual locations
	StaticDir string
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(GetEnv("C4_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("C4_LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Host:        GetEnv("C4_HOST", "127.0.0.1"),
		Port:        GetEnvAsInt("C4_PORT", 8080),
		LogLevel:    level,
		BoardWidth:  GetEnvAsInt("C4_BOARD_WIDTH", 7),
		BoardHeight: GetEnvAsInt("C4_BOARD_HEIGHT", 6),
		StaticDir:   GetEnv("C4_STATIC_DIR", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if err := (game.Config{Width: c.BoardWidth, Height: c.BoardHeight}).Validate(); err != nil {
		return err
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// GetEnv returns the value of key, or fallback when unset or empty
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt returns key parsed as an int, or fallback when unset or
// not a number
func GetEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
