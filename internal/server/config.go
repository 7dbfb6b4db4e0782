package server

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

const (
	envPrefix = "RESOURCEKIT_"
	dbname    = "resourcekit.db"
)

// A Config holds server's configuration.
type Config struct {
	// Address is host:port or unix:/path/to/socket.
	Address      string `koanf:"address"`
	DatabasePath string `koanf:"database_path"`
	// LogFile enables the rotated log file when set.
	LogFile string `koanf:"log_file"`
}

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() Config {
	return Config{
		Address: "localhost:5000",
	}
}

// LoadConfig reads the given YAML file, if any, then the RESOURCEKIT_* environment variables.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	konf := koanf.New(".")

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return cfg, errors.Wrapf(err, "could not read %s", filename)
		}
	}

	err := konf.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read environment")
	}

	err = konf.Unmarshal("", &cfg)
	return cfg, errors.Wrap(err, "could not parse config")
}

// Database returns the path of the database file.
func (c Config) Database() string {
	if len(c.DatabasePath) == 0 {
		return dbname
	}
	return filepath.Join(c.DatabasePath, dbname)
}
