package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
)

// cacheDirPerm is the permission used when creating the cache directory
const cacheDirPerm = 0o750

// Descriptor is a read-only description of a dataset retrieved by checksum.
type Descriptor struct {
	appName  string
	cacheDir string
	baseURL  Locator
	registry map[string]Checksum
}

// Option configures a Descriptor
type Option func(*descriptorConfig) error

type descriptorConfig struct {
	cacheDir string
}

// WithCacheDir stores fetched files in dir instead of the platform cache directory
func WithCacheDir(dir string) Option {
	return func(cfg *descriptorConfig) error {
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		cfg.cacheDir = filepath.Clean(dir)
		return nil
	}
}

// DefaultCacheDir returns the per-user cache directory for appName
func DefaultCacheDir(appName string) string {
	return filepath.Join(xdg.CacheHome, appName)
}

// New creates a descriptor for the files in registry, located under baseURL.
//
// registry maps file names to "<algorithm>:<hex>" checksums. The cache
// directory defaults to DefaultCacheDir(appName) and is created if missing.
func New(appName, baseURL string, registry map[string]string, opts ...Option) (*Descriptor, error) {
	if err := validateAppName(appName); err != nil {
		return nil, err
	}

	cfg := &descriptorConfig{cacheDir: DefaultCacheDir(appName)}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	loc, err := ParseLocator(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !loc.IsDOI() {
		slog.Debug("Dataset base URL is not a DOI, links may not be stable", "base_url", baseURL)
	}

	checksums := make(map[string]Checksum, len(registry))
	for name, raw := range registry {
		if err := ValidateFileName(name); err != nil {
			return nil, err
		}
		c, err := ParseChecksum(raw)
		if err != nil {
			return nil, fmt.Errorf("registry entry %s: %w", name, err)
		}
		checksums[name] = c
	}

	if err := os.MkdirAll(cfg.cacheDir, cacheDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", cfg.cacheDir, err)
	}

	slog.Debug("Created dataset descriptor",
		"app", appName,
		"cache_dir", cfg.cacheDir,
		"base_url", loc.String(),
		"files", len(checksums))

	return &Descriptor{
		appName:  appName,
		cacheDir: cfg.cacheDir,
		baseURL:  loc,
		registry: checksums,
	}, nil
}

func validateAppName(appName string) error {
	if appName == "" {
		return fmt.Errorf("application name is required")
	}
	if strings.ContainsAny(appName, `/\`) || appName == "." || appName == ".." {
		return fmt.Errorf("application name %q must be a single path element", appName)
	}
	return nil
}

// ValidateFileName checks a registry file name is a non-empty relative path
// that stays inside the cache directory
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("registry file name cannot be empty")
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("registry file name %q must be a relative path inside the cache", name)
	}
	return nil
}

// AppName returns the application name the cache directory was derived from
func (d *Descriptor) AppName() string {
	return d.appName
}

// CacheDir returns the directory fetched files are stored in
func (d *Descriptor) CacheDir() string {
	return d.cacheDir
}

// BaseURL returns the base locator of the remote files
func (d *Descriptor) BaseURL() Locator {
	return d.baseURL
}

// Files returns the registered file names in sorted order
func (d *Descriptor) Files() []string {
	return slices.Sorted(maps.Keys(d.registry))
}

// Checksum returns the expected checksum of a registered file
func (d *Descriptor) Checksum(name string) (Checksum, bool) {
	c, ok := d.registry[name]
	return c, ok
}

// Registry returns a copy of the file name to checksum mapping
func (d *Descriptor) Registry() map[string]Checksum {
	return maps.Clone(d.registry)
}

// FileLocator returns the remote locator of a registered file
func (d *Descriptor) FileLocator(name string) (string, error) {
	if _, ok := d.registry[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFile, name)
	}
	return d.baseURL.Join(name), nil
}

// LocalPath returns where a registered file is stored once fetched
func (d *Descriptor) LocalPath(name string) (string, error) {
	if _, ok := d.registry[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFile, name)
	}
	return filepath.Join(d.cacheDir, filepath.FromSlash(name)), nil
}

// Fetch asks f for a local copy of a registered file and returns its path.
// Downloading, caching and checksum verification are left to f.
func (d *Descriptor) Fetch(ctx context.Context, f Fetcher, name string) (string, error) {
	if _, ok := d.registry[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFile, name)
	}

	slog.DebugContext(ctx, "Fetching dataset file", "app", d.appName, "file", name)

	path, err := f.Fetch(ctx, d, name)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	return path, nil
}
