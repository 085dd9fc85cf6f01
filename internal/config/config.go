// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file, environment
// variables and an optional JSON config file.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	// An empty DSN selects the in-memory stores.
	DatabaseDSN string

	// Config is the path to the Config file.
	Config string

	// TokenSecret is the HMAC key used to sign access tokens.
	TokenSecret string

	// TokenTTL is the lifetime of issued access tokens. Zero disables expiry.
	TokenTTL time.Duration

	// LogLevel is the minimum zap level (debug, info, warn, error).
	LogLevel string
}

// fileOptions mirrors the JSON config file. TokenTTL is a Go duration string.
type fileOptions struct {
	Port        *string `json:"server_address"`
	DatabaseDSN *string `json:"database_dsn"`
	TokenSecret *string `json:"jwt_secret"`
	TokenTTL    *string `json:"token_ttl"`
	LogLevel    *string `json:"log_level"`
}

// Parse parses the command-line flags, the .env file and environment
// variables to set configuration values. Precedence from lowest to highest:
// flag defaults and values, JSON config file, environment.
func Parse() *Options {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	options, err := parse(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("error while parsing config: %v", err)
	}
	return options
}

func parse(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}

	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.TokenSecret, "s", "", "access token signing secret")
	fs.DurationVar(&options.TokenTTL, "ttl", 24*time.Hour, "access token lifetime, 0 disables expiry")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if err := applyFile(options, options.Config); err != nil {
			return nil, err
		}
	}

	if serverAddress := getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := getenv("JWT_SECRET"); secret != "" {
		options.TokenSecret = secret
	}
	if ttl := getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL: %w", err)
		}
		options.TokenTTL = d
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options, nil
}

// applyFile overlays the values present in the JSON file at path. A missing
// file is not an error.
func applyFile(options *Options, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	var file fileOptions
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	if file.Port != nil {
		options.Port = *file.Port
	}
	if file.DatabaseDSN != nil {
		options.DatabaseDSN = *file.DatabaseDSN
	}
	if file.TokenSecret != nil {
		options.TokenSecret = *file.TokenSecret
	}
	if file.TokenTTL != nil {
		d, err := time.ParseDuration(*file.TokenTTL)
		if err != nil {
			return fmt.Errorf("config file token_ttl: %w", err)
		}
		options.TokenTTL = d
	}
	if file.LogLevel != nil {
		options.LogLevel = *file.LogLevel
	}
	return nil
}
