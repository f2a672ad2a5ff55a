// Package config loads the configuration shared by the students client
// and the development backend.
//
// Sources, in priority order:
//  1. Process environment (a .env file in the working directory is loaded
//     into it first, without overriding variables that are already set)
//  2. A YAML file named by CONFIG_PATH or the --config flag
//  3. The env-default tags below
//
// No file is required: every field has a default or an env var.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// API variants understood by the client.
const (
	VariantFlat     = "flat"
	VariantResource = "resource"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the SQLite file used by the development backend.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/storage.db"`

	HTTPServer `yaml:"http_server"`

	Client Client `yaml:"client"`
}

// HTTPServer holds the development backend's listener settings.
type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8080"`
}

// Client holds the settings of the terminal client.
type Client struct {
	// APIBase overrides the backend base URL. Empty means the local
	// default; trailing slashes are stripped by the fetcher.
	APIBase string `yaml:"api_base" env:"API_BASE"`

	// Variant selects the endpoint family: "flat" or "resource".
	Variant string `yaml:"variant" env:"API_VARIANT" env-default:"flat"`

	PageSize int `yaml:"page_size" env:"PAGE_SIZE" env-default:"10"`

	Timeout time.Duration `yaml:"timeout" env:"HTTP_CLIENT_TIMEOUT" env-default:"30s"`
}

// Load reads the configuration from path, or from the environment alone
// when path is empty.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or the --config flag
// and loads it. It exits the process when the configuration is invalid,
// so if it returns, the config can be used as is.
//
// MustLoad parses the command line; callers read positional arguments
// with flag.Args afterwards.
func MustLoad() *Config {
	configFlag := flag.String("config", "", "Path to the configuration YAML file")
	if !flag.Parsed() {
		flag.Parse()
	}

	configPath, err := resolvePath(*configFlag)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}
	return cfg
}

// resolvePath returns CONFIG_PATH, which may come from .env, or
// flagValue when it is unset.
func resolvePath(flagValue string) (string, error) {
	if err := loadDotEnv(); err != nil {
		return "", err
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path, nil
	}
	return flagValue, nil
}

// loadDotEnv loads ./.env, if present, without overriding variables that
// are already set.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Client.Variant {
	case VariantFlat, VariantResource:
	default:
		return fmt.Errorf("unknown api variant %q: want %q or %q",
			c.Client.Variant, VariantFlat, VariantResource)
	}
	if c.Client.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.Client.PageSize)
	}
	return nil
}
