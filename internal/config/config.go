// Package config resolves dropletforge settings from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/boxalarm/dropletforge/internal/constants"
)

// Default values used when neither the config file nor the environment set them
const (
	DefaultRegion          = "nyc1"
	DefaultSize            = "s-1vcpu-1gb"
	DefaultImage           = "ubuntu-24-04-x64"
	DefaultPollInterval    = time.Second
	DefaultPollTimeout     = 5 * time.Minute
	DefaultIPLookupTimeout = 5 * time.Second
)

// DefaultIPServices are queried in order to detect the operator's public IP
var DefaultIPServices = []string{
	"https://ifconfig.me",
	"https://api.ipify.org",
	"https://ifconfig.co",
}

// Config holds every setting the CLI needs to talk to DigitalOcean
type Config struct {
	Token           string        `yaml:"-"`
	Region          string        `yaml:"region"`
	Size            string        `yaml:"size"`
	Image           string        `yaml:"image"`
	SSHDir          string        `yaml:"ssh_dir"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	PollTimeout     time.Duration `yaml:"poll_timeout"`
	IPLookupTimeout time.Duration `yaml:"ip_lookup_timeout"`
	IPServices      []string      `yaml:"ip_services"`
}

// Default returns a Config populated with built-in defaults
func Default() *Config {
	return &Config{
		Region:          DefaultRegion,
		Size:            DefaultSize,
		Image:           DefaultImage,
		SSHDir:          defaultSSHDir(),
		PollInterval:    DefaultPollInterval,
		PollTimeout:     DefaultPollTimeout,
		IPLookupTimeout: DefaultIPLookupTimeout,
		IPServices:      append([]string(nil), DefaultIPServices...),
	}
}

// DefaultPath returns the location of the optional config file
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dropletforge", "config.yaml")
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.SSHDir = expandHome(cfg.SSHDir)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	// #nosec G304 -- path comes from the operator's own flag or default location
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Token = GetEnv(constants.EnvDigitalOceanToken, os.Getenv(constants.EnvLegacyAPIKey))
	c.Region = GetEnv(constants.EnvRegion, c.Region)
	c.Size = GetEnv(constants.EnvSize, c.Size)
	c.Image = GetEnv(constants.EnvImage, c.Image)
	c.SSHDir = GetEnv(constants.EnvSSHDir, c.SSHDir)

	var err error
	if c.PollInterval, err = durationEnv(constants.EnvPollInterval, c.PollInterval); err != nil {
		return err
	}
	if c.PollTimeout, err = durationEnv(constants.EnvPollTimeout, c.PollTimeout); err != nil {
		return err
	}
	if c.IPLookupTimeout, err = durationEnv(constants.EnvIPLookupTimeout, c.IPLookupTimeout); err != nil {
		return err
	}
	return nil
}

// Validate checks the settings needed before any provider call is made
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%s environment variable is not set", constants.EnvDigitalOceanToken)
	}
	if c.SSHDir == "" {
		return fmt.Errorf("ssh directory is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.PollTimeout < c.PollInterval {
		return fmt.Errorf("poll timeout %s is shorter than poll interval %s", c.PollTimeout, c.PollInterval)
	}
	if c.IPLookupTimeout <= 0 {
		return fmt.Errorf("ip lookup timeout must be positive, got %s", c.IPLookupTimeout)
	}
	if len(c.IPServices) == 0 {
		return fmt.Errorf("at least one IP lookup service is required")
	}
	return nil
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func defaultSSHDir() string {
	return filepath.Join("~", ".ssh")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
