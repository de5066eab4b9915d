// Package config provides configuration loading for dataset descriptors.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zootasks/zootasks-utils/pkg/dataset"
)

const (
	// EnvPrefix is the prefix of environment variables overriding file configuration
	EnvPrefix = "ZOOTASKS"

	// DefaultDatasetName is the name of the built-in Euclid Q1 morphology dataset
	DefaultDatasetName = "euclid_q1_morphology"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) && !filepath.IsLocal(realPath) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// AppName names the per-user cache directory shared by all datasets
	AppName string `yaml:"appName"`

	// CacheDir overrides the platform cache directory when set
	CacheDir string `yaml:"cacheDir,omitempty"`

	Datasets []DatasetConfig `yaml:"datasets"`
}

// DatasetConfig describes one dataset retrieved by checksum
type DatasetConfig struct {
	// Name is the identifier for this dataset
	Name string `yaml:"name"`

	// BaseURL is the base locator of the remote files, preferably a DOI
	// Example: "doi:10.5281/zenodo.15106473"
	BaseURL string `yaml:"baseURL"`

	// Registry maps file names to "<algorithm>:<hex>" checksums
	Registry map[string]string `yaml:"registry"`
}

// Default returns the configuration of the built-in Euclid Q1 morphology
// dataset, with the same ZOOTASKS_* environment overrides as LoadConfig
func Default() *Config {
	config := &Config{
		AppName: dataset.EuclidAppName,
		Datasets: []DatasetConfig{
			{
				Name:     DefaultDatasetName,
				BaseURL:  dataset.EuclidQ1MorphologyDOI,
				Registry: dataset.EuclidQ1MorphologyRegistry(),
			},
		},
	}
	config.applyEnvOverrides()
	return config
}

// LoadConfig loads and parses configuration from a YAML file, then applies
// ZOOTASKS_* environment overrides
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.applyEnvOverrides()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Debug("Loaded dataset configuration",
		"path", loaderCfg.path,
		"app", config.AppName,
		"datasets", len(config.Datasets))

	return &config, nil
}

// applyEnvOverrides replaces file values with ZOOTASKS_APP_NAME and ZOOTASKS_CACHE_DIR when set
func (c *Config) applyEnvOverrides() {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if appName := v.GetString("APP_NAME"); appName != "" {
		slog.Info("Overriding application name from environment", "app", appName)
		c.AppName = appName
	}
	if cacheDir := v.GetString("CACHE_DIR"); cacheDir != "" {
		slog.Info("Overriding cache directory from environment", "cache_dir", cacheDir)
		c.CacheDir = cacheDir
	}
}

// Dataset returns the dataset configuration with the given name
func (c *Config) Dataset(name string) (*DatasetConfig, bool) {
	i := slices.IndexFunc(c.Datasets, func(ds DatasetConfig) bool { return ds.Name == name })
	if i < 0 {
		return nil, false
	}
	return &c.Datasets[i], true
}

// Descriptors builds a descriptor for every configured dataset, keyed by name
func (c *Config) Descriptors() (map[string]*dataset.Descriptor, error) {
	var opts []dataset.Option
	if c.CacheDir != "" {
		opts = append(opts, dataset.WithCacheDir(c.CacheDir))
	}

	descriptors := make(map[string]*dataset.Descriptor, len(c.Datasets))
	for _, ds := range c.Datasets {
		d, err := dataset.New(c.AppName, ds.BaseURL, ds.Registry, opts...)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		descriptors[ds.Name] = d
	}
	return descriptors, nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.AppName == "" {
		return fmt.Errorf("appName is required")
	}

	if len(c.Datasets) == 0 {
		return fmt.Errorf("at least one dataset must be configured")
	}

	names := make(map[string]bool)
	for i, ds := range c.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset[%d]: name is required", i)
		}

		if names[ds.Name] {
			return fmt.Errorf("dataset[%d]: duplicate dataset name '%s'", i, ds.Name)
		}
		names[ds.Name] = true

		if err := validateDatasetConfig(&ds, i); err != nil {
			return err
		}
	}

	return nil
}

// validateDatasetConfig validates a single dataset configuration
func validateDatasetConfig(ds *DatasetConfig, index int) error {
	prefix := fmt.Sprintf("dataset[%d] (%s)", index, ds.Name)

	if ds.BaseURL == "" {
		return fmt.Errorf("%s: baseURL is required", prefix)
	}
	if _, err := dataset.ParseLocator(ds.BaseURL); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	if len(ds.Registry) == 0 {
		return fmt.Errorf("%s: registry must list at least one file", prefix)
	}
	for name, checksum := range ds.Registry {
		if err := dataset.ValidateFileName(name); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
		if _, err := dataset.ParseChecksum(checksum); err != nil {
			return fmt.Errorf("%s: registry entry %s: %w", prefix, name, err)
		}
	}

	return nil
}
