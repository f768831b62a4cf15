// Package cli implements the skyline command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render/chart"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "skyline"

	// variantsFile is the optional user variants file inside the config directory.
	variantsFile = "variants.toml"
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
	Out    io.Writer // command output; stdout unless overridden in tests
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Skyline plots work sessions against assignment deadlines",
		Long:          `Skyline renders a student's work sessions on a programming assignment as stacked area charts annotated with the milestone, early bonus, and final due dates.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.deadlinesCommand())
	root.AddCommand(c.variantsCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/skyline/).
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

// loadVariants reads user variants from path, or from the config directory
// when path is empty. A missing default file is not an error.
func (c *CLI) loadVariants(path string) (chart.Variants, error) {
	if path != "" {
		return chart.ReadVariantsFile(path)
	}
	dir, err := configDir()
	if err != nil {
		return nil, nil
	}
	path = filepath.Join(dir, variantsFile)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	c.Logger.Debug("loading variants", "path", path)
	return chart.ReadVariantsFile(path)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		input = strings.TrimPrefix(input, "sqlite://")
		if i := strings.IndexByte(input, '?'); i >= 0 {
			input = input[:i]
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
