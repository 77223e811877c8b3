// Package config loads server configuration with multi-source priority:
// environment variables override an optional YAML config file, which
// overrides built-in defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/deckhand-ai/deckhand/internal"
)

var (
	// ErrInvalidTimeout indicates the upstream request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidMountRoot indicates the host mount root is empty.
	ErrInvalidMountRoot = errors.New("invalid mount root")
)

// DefaultTimeout is the upstream HTTP request timeout used when none is
// configured.
const DefaultTimeout = 30 * time.Second

// Config is the immutable server configuration. Load validates it once at
// startup; empty endpoints and tokens are legal and surface per call, not
// here.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	GitHub GitHubConfig `mapstructure:"github"`
	Paths  PathsConfig  `mapstructure:"paths"`
}

// APIConfig holds the primary REST API connection settings.
type APIConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	BearerToken string        `mapstructure:"bearer_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// GitHubConfig holds the GitHub API connection settings.
type GitHubConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	BearerToken string `mapstructure:"bearer_token"`
	Org         string `mapstructure:"org"`
}

// PathsConfig controls how client-supplied filesystem paths are mapped onto
// the local filesystem.
type PathsConfig struct {
	ContainerMode bool   `mapstructure:"container_mode"`
	MountRoot     string `mapstructure:"mount_root"`
}

// Load reads configuration from the given YAML file path (optional; pass ""
// to skip), layered under environment variables and over defaults. Bearer
// tokens may be 1Password secret references (op://...), resolved here.
func Load(ctx context.Context, path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			slog.Debug("config file not found, using defaults", "path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.resolveSecrets(ctx); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", "")
	v.SetDefault("api.bearer_token", "")
	v.SetDefault("api.timeout", DefaultTimeout)

	v.SetDefault("github.endpoint", "")
	v.SetDefault("github.bearer_token", "")
	v.SetDefault("github.org", "")

	v.SetDefault("paths.container_mode", false)
	v.SetDefault("paths.mount_root", "/host")
}

// bindEnv binds each key to its exact environment variable name. The bind
// calls only fail for empty input, so a failure here is a bug, not a runtime
// condition.
func bindEnv(v *viper.Viper) {
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: binding %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("api.endpoint", "API_ENDPOINT")
	mustBind("api.bearer_token", "BEARER_TOKEN")
	mustBind("api.timeout", "API_TIMEOUT")

	mustBind("github.endpoint", "GITHUB_API_ENDPOINT")
	mustBind("github.bearer_token", "GITHUB_BEARER_TOKEN")
	mustBind("github.org", "GITHUB_ORG_NAME")

	mustBind("paths.container_mode", "CONTAINER_MODE")
	mustBind("paths.mount_root", "MOUNT_ROOT")
}

func (c *Config) resolveSecrets(ctx context.Context) error {
	token, err := internal.ResolveSecret(ctx, c.API.BearerToken)
	if err != nil {
		return fmt.Errorf("resolving API bearer token: %w", err)
	}
	c.API.BearerToken = token

	token, err = internal.ResolveSecret(ctx, c.GitHub.BearerToken)
	if err != nil {
		return fmt.Errorf("resolving GitHub bearer token: %w", err)
	}
	c.GitHub.BearerToken = token

	return nil
}

// Validate checks structural sanity. Missing endpoints and tokens are not
// errors; each tool call reports those itself.
func (c *Config) Validate() error {
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive, got %s", ErrInvalidTimeout, c.API.Timeout)
	}
	if c.Paths.MountRoot == "" {
		return fmt.Errorf("%w: paths.mount_root must not be empty", ErrInvalidMountRoot)
	}
	return nil
}
