// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is read once at process start and handed to every component by
// reference. Components never look up environment state themselves.
type Config struct {
	Database   string
	ListenAddr string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string

	CronSecret string

	MaxMessagesPerRun int
	Workers           int

	Loglevel *string
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		Database:          "triage.db",
		ListenAddr:        ":8080",
		GeminiModel:       "gemini-1.5-flash",
		GeminiEndpoint:    "https://generativelanguage.googleapis.com/v1beta",
		MaxMessagesPerRun: 10,
		Workers:           4,
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.ListenAddr, "ListenAddr must not be empty, set to the host:port the http server binds to"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.GoogleClientID, "GoogleClientID must not be empty, set to the oauth client id of the application"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.GoogleClientSecret, "GoogleClientSecret must not be empty, set to the oauth client secret of the application"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.GeminiAPIKey, "GeminiAPIKey must not be empty, set to an api key for the classification backend"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.CronSecret, "CronSecret must not be empty, set to the shared secret for the periodic sync trigger"); err != nil {
		return err
	}

	if c.MaxMessagesPerRun <= 0 {
		return fmt.Errorf("MaxMessagesPerRun must be positive, got %d", c.MaxMessagesPerRun)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("Workers must be positive, got %d", c.Workers)
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
