package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name searched in the current and
// home directories.
const DefaultConfigFile = ".cczukit"

// XDGConfigFile is the config file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Account is the login section of the config file.
type Account struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// EndpointsFile overrides upstream roots, mostly useful for testing
// against a mirror.
type EndpointsFile struct {
	SSO string `yaml:"sso,omitempty"`
	VPN string `yaml:"vpn,omitempty"`
	App string `yaml:"app,omitempty"`
}

// File represents the structure of the .cczukit configuration file.
type File struct {
	Account   Account           `yaml:"account,omitempty"`
	Endpoints EndpointsFile     `yaml:"endpoints,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	UserAgent string            `yaml:"userAgent,omitempty"`
	Proxy     string            `yaml:"proxy,omitempty"`
	CacheDir  string            `yaml:"cacheDir,omitempty"`
	Timeout   time.Duration     `yaml:"timeout,omitempty"`
}

// Apply copies every non-zero value of the file into cfg. Headers are
// merged key by key.
func (f *File) Apply(cfg *Config) {
	if f.Account.Username != "" {
		cfg.Username = f.Account.Username
	}
	if f.Account.Password != "" {
		cfg.Password = f.Account.Password
	}
	if f.Endpoints.SSO != "" {
		cfg.Endpoints.SSOURL = f.Endpoints.SSO
	}
	if f.Endpoints.VPN != "" {
		cfg.Endpoints.VPNURL = f.Endpoints.VPN
	}
	if f.Endpoints.App != "" {
		cfg.Endpoints.AppBaseURL = f.Endpoints.App
	}
	if len(f.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			cfg.Headers[k] = v
		}
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Proxy != "" {
		cfg.Proxy = f.Proxy
	}
	if f.CacheDir != "" {
		cfg.CacheDir = f.CacheDir
	}
	if f.Timeout != 0 {
		cfg.Timeout = f.Timeout
	}
}

// LoadConfigFile loads a YAML config file. A missing file yields
// ErrConfigNotFound so callers can decide whether that matters.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in this order:
//  1. configPath, when given (returned only if it exists)
//  2. .cczukit in the current directory
//  3. config.yaml in the XDG config directory
//  4. .cczukit in the home directory
//
// It returns an empty string when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Load builds a Config from defaults, the config file and the environment.
// An explicit configPath that does not exist is an error; a missing
// default file is not.
func Load(configPath string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = configPath

	path := FindConfigFile(configPath)
	if path == "" && configPath != "" {
		return nil, ErrConfigNotFound
	}
	if path != "" {
		file, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		file.Apply(cfg)
	}

	if lookup != nil {
		cfg.ApplyEnv(lookup)
	}
	return cfg, nil
}
