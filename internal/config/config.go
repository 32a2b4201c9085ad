package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/spectral"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

// Config is the root application configuration. All sections are
// optional; zero values fall back to built-in defaults.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Tracer TracerConfig `yaml:"tracer"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type TracerConfig struct {
	MaxBounces int `yaml:"max_bounces"`
	MaxNodes   int `yaml:"max_nodes"`
}

type SweepConfig struct {
	Workers     int     `yaml:"workers"`
	UnitScaleNm float64 `yaml:"unit_scale_nm"`
	Visibility  float64 `yaml:"visibility"`
}

// GetPort returns the HTTP port with priority: config, then the
// OPTICAL_PORT environment variable, then the default 8000
func (s *ServerConfig) GetPort() int {
	if s != nil && s.Port > 0 {
		return s.Port
	}
	if envVal := os.Getenv("OPTICAL_PORT"); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return 8000
}

// TracerSettings folds the configured tracer limits over the defaults
func (c *Config) TracerSettings() tracer.Config {
	settings := tracer.DefaultConfig()
	if c == nil {
		return settings
	}
	if c.Tracer.MaxBounces > 0 {
		settings.MaxBounces = c.Tracer.MaxBounces
	}
	if c.Tracer.MaxNodes > 0 {
		settings.MaxNodes = c.Tracer.MaxNodes
	}
	return settings
}

// SpectralModel folds the configured detection model over the defaults
func (c *Config) SpectralModel() spectral.Model {
	model := spectral.DefaultModel()
	if c == nil {
		return model
	}
	if c.Sweep.UnitScaleNm > 0 {
		model.UnitScaleNm = c.Sweep.UnitScaleNm
	}
	if c.Sweep.Visibility > 0 {
		model.Visibility = c.Sweep.Visibility
	}
	return model
}

// Workers returns the sweep worker count, 0 meaning one per CPU
func (c *Config) Workers() int {
	if c == nil {
		return 0
	}
	return c.Sweep.Workers
}

// Port returns the HTTP port honoring config and environment fallbacks
func (c *Config) Port() int {
	if c == nil {
		return (*ServerConfig)(nil).GetPort()
	}
	return c.Server.GetPort()
}

// Load reads a YAML configuration file. When path is empty it falls back
// to the OPTICAL_CONFIG environment variable, and returns nil, nil when
// neither is set so callers run on defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("OPTICAL_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
