package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestedheaders/internal/config"
	"github.com/matzehuels/nestedheaders/pkg/buildinfo"
	"github.com/matzehuels/nestedheaders/pkg/cache"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	"github.com/matzehuels/nestedheaders/pkg/pipeline"
	"github.com/matzehuels/nestedheaders/pkg/render"
)

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
// The configuration is replaced by the loaded one before any command runs.
func New(w io.Writer, level log.Level) *CLI {
	cfg := config.Default()
	return &CLI{
		Logger: newLogger(w, level),
		Config: &cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "nestedheaders builds multi-level table headers",
		Long: `nestedheaders turns nested column header definitions into a header matrix:
one row per level, one slot per leaf column, with hidden columns and collapsed
headers applied. The matrix can be printed, exported or served over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nestedheaders/config.toml)")

	root.AddCommand(c.matrixCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose, loads the configuration and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// newCache picks the redis cache when a URL is configured, the file cache
// otherwise. A file cache without a usable directory degrades to no caching.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(url)
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string selects def.
func parseFormats(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	return strings.Split(s, ",")
}

// parseColumns parses a comma-separated list of column indices.
func parseColumns(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var cols []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid column %q", part)
		}
		cols = append(cols, n)
	}
	return cols, nil
}

// parsePositions parses "level:column" pairs.
func parsePositions(values []string) ([]headers.Position, error) {
	positions := make([]headers.Position, 0, len(values))
	for _, v := range values {
		level, column, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("invalid position %q (want level:column)", v)
		}
		l, err := strconv.Atoi(level)
		if err != nil {
			return nil, fmt.Errorf("invalid level in %q", v)
		}
		col, err := strconv.Atoi(column)
		if err != nil {
			return nil, fmt.Errorf("invalid column in %q", v)
		}
		positions = append(positions, headers.Position{Level: l, Column: col})
	}
	return positions, nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.html, .xlsx, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for format := range render.ValidFormats {
		if render.Extension(format) == ext {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// formatFromOutput returns the format whose extension output carries.
func formatFromOutput(output string) (string, bool) {
	ext := filepath.Ext(output)
	if ext == "" {
		return "", false
	}
	for format := range render.ValidFormats {
		if render.Extension(format) == ext {
			return format, true
		}
	}
	return "", false
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
