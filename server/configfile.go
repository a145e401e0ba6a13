// File: server/configfile.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Optional YAML configuration loading, layered on top of Option/Config —
// not a replacement for it. Grounded on the ambient-config-loader shape
// the pack's server-style repos use (functional options for code-driven
// setup, a YAML file for operators); gopkg.in/yaml.v3 is the pack's own
// YAML dependency.
package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config's fields in their YAML-friendly spelling.
type fileConfig struct {
	Host                     string `yaml:"host"`
	Port                     int    `yaml:"port"`
	WSPort                   int    `yaml:"wsPort"`
	CertificateChain         string `yaml:"certificateChain"`
	PrivateKey               string `yaml:"privateKey"`
	Password                 string `yaml:"password"`
	ClientCAFile             string `yaml:"clientCAFile"`
	ServerMode               string `yaml:"serverMode"`
	UseWebsocketInMainThread bool   `yaml:"useWebsocketInMainThread"`
	StaticRoot               string `yaml:"staticRoot"`
	ShutdownTimeoutSeconds   int    `yaml:"shutdownTimeoutSeconds"`
}

// LoadConfigFile reads a YAML configuration file and returns a Config
// seeded from DefaultConfig with the file's values overlaid. Fields absent
// from the file keep their default.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server: read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("server: parse config file: %w", err)
	}

	cfg := DefaultConfig()
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	cfg.WSPort = fc.WSPort
	cfg.CertificateChain = fc.CertificateChain
	cfg.PrivateKey = fc.PrivateKey
	cfg.Password = fc.Password
	cfg.ClientCAFile = fc.ClientCAFile
	if fc.ServerMode != "" {
		cfg.ServerMode = Mode(fc.ServerMode)
	}
	cfg.UseWebsocketInMainThread = fc.UseWebsocketInMainThread
	cfg.StaticRoot = fc.StaticRoot
	if fc.ShutdownTimeoutSeconds > 0 {
		cfg.ShutdownTimeout = time.Duration(fc.ShutdownTimeoutSeconds) * time.Second
	}
	return cfg, nil
}
