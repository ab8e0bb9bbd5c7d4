package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	defaultPort     = "3000"
	defaultLogLevel = "info"
)

type Config struct {
	Port     string
	LogLevel zerolog.Level
}

// LoadConfig reads PORT and LOG_LEVEL from the environment (and .env, when
// present). Command line flags take precedence.
func LoadConfig(args []string) (*Config, error) {
	godotenv.Load()
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = defaultLogLevel
	}

	fs := pflag.NewFlagSet("medisync", pflag.ContinueOnError)
	fs.StringVarP(&port, "port", "p", port, "port to listen on")
	fs.StringVarP(&level, "log-level", "l", level, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return nil, fmt.Errorf("invalid port %q", port)
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return &Config{Port: port, LogLevel: lvl}, nil
}

func MustLoadConfig() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
