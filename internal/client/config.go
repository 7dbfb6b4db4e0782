package client

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

const envPrefix = "RESOURCECTL_"

// A Config holds client's configuration.
type Config struct {
	Endpoint string `koanf:"endpoint"`
	LogFile  string `koanf:"log_file"`
}

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://localhost:5000",
		LogFile:  "resourcectl.log",
	}
}

// LoadConfig reads the given YAML file, if any, then the RESOURCECTL_* environment variables.
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
