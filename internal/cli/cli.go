// Package cli implements the slidelayout command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/audit"
	"github.com/matzehuels/slidelayout/pkg/buildinfo"
	"github.com/matzehuels/slidelayout/pkg/config"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/errors"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "slidelayout"

	// configFileName is looked up in the config directory when --config is unset.
	configFileName = "config.toml"
)

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

	// Global flags.
	configPath string
	preset     string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Slidelayout picks slide master layouts from slide content",
		Long:         `Slidelayout inspects the semantic content of a slide (headline, icons, charts, two-column text) and deterministically picks the presentation template layout that should render it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&c.preset, "preset", "", "rule preset (reference or catalog); overrides the config file")

	// Register all subcommands
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.rulesCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig resolves the effective configuration: the --config file, or the
// default config file when it exists, then the --preset override.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg := config.Default()

	path := c.configPath
	if path == "" {
		if p, err := defaultConfigPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		c.Logger.Debug("loaded config", "path", path, "preset", cfg.Preset)
	}

	if c.preset != "" {
		rules, err := selector.Preset(c.preset)
		if err != nil {
			return config.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "--preset")
		}
		cfg.Preset = c.preset
		cfg.Rules = rules
	}
	return cfg, nil
}

// router builds the router described by cfg.
func router(cfg config.Config) *pipeline.Router {
	return pipeline.NewRouter(cfg.Analysis, cfg.Rules)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The audit sink comes from
// auditURL, falling back to the config file's sink.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, auditURL string) (*pipeline.Runner, error) {
	if auditURL == "" {
		auditURL = cfg.AuditURL
	}
	sink, err := audit.Open(ctx, auditURL)
	if err != nil {
		return nil, err
	}
	if auditURL != "" {
		c.Logger.Debug("audit sink", "kind", sink.Name())
	}
	return pipeline.NewRunner(router(cfg), sink, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/slidelayout/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
