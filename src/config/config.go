package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"seraph.si/v2/bfhl-form/src/form"
)

const DefaultFile = "config.json"

type Config struct {
	Endpoint     string `json:"endpoint"`
	Listen       string `json:"listen"`
	UserAgent    string `json:"user_agent"`
	SessionLimit int    `json:"session_limit"`
}

func Default() Config {
	return Config{
		Endpoint:     form.DefaultEndpoint,
		Listen:       ":8080",
		UserAgent:    "bfhl-form",
		SessionLimit: 1024,
	}
}

// DefaultPath is config.json in the working directory.
func DefaultPath() string {
	if path, err := os.Getwd(); err == nil {
		return filepath.Join(path, DefaultFile)
	}
	return DefaultFile
}

// Read loads filename over the defaults. A missing file is not an error.
func Read(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes cfg to filename as indented JSON.
func Save(filename string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadDotEnv loads a .env file into the process environment if one exists.
func LoadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides fields from BFHL_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BFHL_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("BFHL_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("BFHL_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
}

func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if c.Listen == "" {
		return errors.New("listen address required")
	}
	if c.SessionLimit <= 0 {
		return errors.New("session_limit must be positive")
	}
	return nil
}
