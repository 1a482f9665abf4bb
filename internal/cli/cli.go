package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stacklattice/pkg/cache"
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stacklattice"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are shared by every command that goes through a runner.
type cacheFlags struct {
	noCache  bool
	redisURL string
	prefix   string // namespace for keys in a shared cache
}

// newRunner creates a pipeline runner backed by Redis when a URL is given,
// the file cache otherwise. A prefix scopes every key the runner writes.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, newKeyer(f.prefix), c.Logger), nil
}

// newKeyer returns nil for an empty prefix so the runner picks its default.
func newKeyer(prefix string) cache.Keyer {
	if prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix+":")
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redisURL != "" {
		return cache.NewRedisCache(ctx, f.redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stacklattice/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadOptions reads a TOML config file, or returns zero options when path
// is empty. Defaults are applied later by the runner.
func loadOptions(path string) (pipeline.Options, error) {
	if path == "" {
		return pipeline.Options{}, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.LoadOptionsFile(path)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
