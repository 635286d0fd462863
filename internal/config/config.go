package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Rating defaults, kept as configuration so deployments that started on
// another base (eg. 1000) can keep their scale.
const (
	DefaultBaseRating = 1500.0
	DefaultKFactor    = 32.0
)

type Config struct {
	// Database is the path to the SQLite database file.
	Database string

	// BaseRating is the rating every team starts at.
	BaseRating float64

	// KFactor is the maximum amount of rating points a single match can
	// move, for the whole system (no per-team or per-match K).
	KFactor float64
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) expandFromEnv() {
	if str := os.Getenv("ELODIE_DATABASE"); str != "" {
		c.Database = str
	}
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = "./elodie.db"
	}

	if c.BaseRating == 0 {
		c.BaseRating = DefaultBaseRating
	}

	if c.KFactor == 0 {
		c.KFactor = DefaultKFactor
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	defer func() {
		c.expandFromEnv()
		c.applyDefaults()
	}()

	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		*c = Config{}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(c)
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "elodie")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o700)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
