// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// Config is the top-level Lattice configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Store   StoreConfig   `mapstructure:"store"`
}

// ServerConfig controls how the registry server listens for connections.
type ServerConfig struct {
	Listen      string   `mapstructure:"listen"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	Backend          string `mapstructure:"backend"`
	Path             string `mapstructure:"path"`
	VectorDimensions int    `mapstructure:"vector_dimensions"`
}

// StoreConfig names the document store registered at startup.
type StoreConfig struct {
	ID string `mapstructure:"id"`
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix LATTICE_).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.listen", "127.0.0.1:18790")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.path", "lattice.db")
	v.SetDefault("storage.vector_dimensions", 256)
	v.SetDefault("store.id", "default")

	// Environment
	v.SetEnvPrefix("LATTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// File
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, latticeerr.Errorf(latticeerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns a slice
// of all validation errors found, collecting all issues rather than stopping
// at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateStore()...)

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
		return errs
	}

	host, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w",
			c.Server.Listen, err,
		))
		return errs
	}
	_ = host // host can be empty (e.g., ":8080"), which is valid

	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q",
			portStr,
		))
	} else if port < 1 || port > 65535 {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 1 and 65535, got %d",
			port,
		))
	}

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	validBackends := map[string]bool{"memory": true, "sqlitevec": true}
	if !validBackends[c.Storage.Backend] {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
			"config: storage.backend must be one of [memory, sqlitevec], got %q",
			c.Storage.Backend,
		))
	}

	if c.Storage.Backend == "sqlitevec" {
		if c.Storage.Path == "" {
			errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
				"config: storage.path must not be empty when storage.backend is sqlitevec"))
		}
		if c.Storage.VectorDimensions <= 0 {
			errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
				"config: storage.vector_dimensions must be greater than 0, got %d",
				c.Storage.VectorDimensions,
			))
		}
	}

	return errs
}

func (c *Config) validateStore() []error {
	var errs []error

	if c.Store.ID == "" {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue, "config: store.id must not be empty"))
	} else if strings.Contains(c.Store.ID, "/") {
		errs = append(errs, latticeerr.Errorf(latticeerr.CodeConfigValidateInvalidValue,
			"config: store.id must not contain '/', got %q",
			c.Store.ID,
		))
	}

	return errs
}
