// Package config loads CLI settings from a YAML file and ZENUS_* environment variables.
//
// Precedence, lowest first: defaults, file, environment, flags. Flags are
// applied by the caller after Load.
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/zenus/pkg/core"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8888

	// FileName is looked up under the per-user config directory.
	FileName = "config.yaml"
)

// Config represents the settings shared by every zenus command.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Auth     string `yaml:"auth"`
	Path     string `yaml:"path"`
	Remote   string `yaml:"remote"`
	ReadOnly bool   `yaml:"read_only"`
	Verbose  bool   `yaml:"verbose"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// DefaultFile returns <user config dir>/zenus/config.yaml.
func DefaultFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "zenus", FileName), nil
}

// Load reads the YAML file at path on top of the defaults, then applies the environment.
// An empty path means DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultFile(); err == nil {
			path = p
		}
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to parse config file %s: %v", core.ErrConfig, path, err)
	}
	return nil
}

// ApplyEnv overrides fields from ZENUS_HOST, ZENUS_PORT, ZENUS_AUTH,
// ZENUS_PATH, ZENUS_REMOTE, ZENUS_READ_ONLY and ZENUS_VERBOSE.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("ZENUS_HOST"); v != "" {
		c.Host = v
	}
	if v := getenv("ZENUS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: ZENUS_PORT: %v", core.ErrConfig, err)
		}
		c.Port = port
	}
	if v := getenv("ZENUS_AUTH"); v != "" {
		c.Auth = v
	}
	if v := getenv("ZENUS_PATH"); v != "" {
		c.Path = v
	}
	if v := getenv("ZENUS_REMOTE"); v != "" {
		c.Remote = v
	}
	if v := getenv("ZENUS_READ_ONLY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: ZENUS_READ_ONLY: %v", core.ErrConfig, err)
		}
		c.ReadOnly = b
	}
	if v := getenv("ZENUS_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: ZENUS_VERBOSE: %v", core.ErrConfig, err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks the combination of settings. serving is true for `zenus serve`.
func (c *Config) Validate(serving bool) error {
	if c.Remote != "" && c.Path != "" {
		return fmt.Errorf("%w: remote and path are mutually exclusive", core.ErrConfig)
	}
	if serving {
		if c.Remote != "" {
			return fmt.Errorf("%w: the server always stores locally; unset remote", core.ErrConfig)
		}
		if c.Port < 0 || c.Port > 65535 {
			return fmt.Errorf("%w: invalid port %d", core.ErrConfig, c.Port)
		}
	}
	return nil
}

// Addr returns the listen address for the server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
