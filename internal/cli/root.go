// Package cli provides the command-line interface for nextver.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/relicta-tech/nextver/internal/config"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

var (
	// Version information set by main.
	versionInfo struct {
		Version string
		Commit  string
		Date    string
	}

	// Global flags
	cfgFile    string
	verbose    bool
	outputJSON bool
	noColor    bool
	logLevel   string
	repoPath   string

	// Global config
	cfg *config.Config

	// Logger
	logger *log.Logger

	// logFile holds the log file handle for cleanup
	logFile *os.File

	// Styles
	styles = struct {
		Title   lipgloss.Style
		Success lipgloss.Style
		Error   lipgloss.Style
		Warning lipgloss.Style
		Info    lipgloss.Style
		Subtle  lipgloss.Style
		Bold    lipgloss.Style
	}{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
)

// globalFlagBindings maps config keys to persistent flag names.
var globalFlagBindings = map[string]string{
	"output.verbose":   "verbose",
	"output.log_level": "log-level",
	"git.repo_path":    "repo",
}

// SetVersionInfo sets the version information from main.
func SetVersionInfo(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Building it resets every flag
// variable to its default.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nextver",
		Short: "Calculate the next semantic version from conventional commits",
		Long: `nextver calculates the next semantic version of a project from the
Conventional Commits made since its latest version tag.

It reports the bump level (none, patch, minor, major, prerelease, release),
the next version and the highest change type seen, and can gate a
pipeline on required files or a minimum change level.

Run without a subcommand it behaves like 'nextver calculate'.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for init and version commands
			if cmd.Name() == "init" || cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return initConfig(cmd)
		},
		RunE:          runCalculate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default: .nextver.yaml in the repository)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&outputJSON, "json", false, "output results and logs as JSON")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&repoPath, "repo", ".", "path inside the git repository")

	addCalculateFlags(cmd)

	cmd.AddCommand(newCalculateCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newTagsCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context for graceful shutdown.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Initialize logger with default settings
	// Format and level are configured in initConfig based on flags
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
}

// loadAndValidateConfig loads the configuration, letting explicitly set
// flags override file and environment values.
func loadAndValidateConfig(cmd *cobra.Command) error {
	const op = "cli.loadConfig"

	loader := config.NewLoader()
	if cfgFile != "" {
		loader.WithConfigPath(cfgFile)
	} else if repoPath != "" && repoPath != "." {
		loader.WithSearchPaths(repoPath)
	}

	flags := cmd.Flags()
	for _, bindings := range []map[string]string{globalFlagBindings, calculateFlagBindings, checkFlagBindings} {
		for key, name := range bindings {
			if err := loader.BindFlag(key, flags.Lookup(name)); err != nil {
				return err
			}
		}
	}

	loaded, err := loader.Load()
	if err != nil {
		return err
	}

	validator := config.NewValidator()
	if err := validator.Validate(loaded); err != nil {
		return rperrors.Wrap(err, rperrors.KindConfig, op, "invalid configuration").
			WithDetail("config", loader.GetConfigPath())
	}
	for _, warning := range validator.Warnings() {
		logger.Warn("configuration", "warning", warning)
	}

	cfg = loaded
	return nil
}

// applyGlobalFlags applies global CLI flags to the configuration.
func applyGlobalFlags() {
	if verbose {
		cfg.Output.Verbose = true
	}

	if outputJSON {
		cfg.Output.Format = config.FormatJSON
	}

	if noColor || !cfg.Output.Color {
		cfg.Output.Color = false
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// configureLoggerFormat configures the logger format based on settings.
func configureLoggerFormat() {
	if outputJSON {
		logger.SetFormatter(log.JSONFormatter)
		logger.SetReportTimestamp(true)
	} else {
		logger.SetFormatter(log.TextFormatter)
	}
}

// configureLogLevel sets the logger level based on configuration.
func configureLogLevel() {
	switch cfg.Output.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if cfg.Output.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// configureLogOutput sends logs to the log file when one is configured,
// otherwise to w.
func configureLogOutput(w io.Writer) error {
	if cfg.Output.LogFile == "" {
		logger.SetOutput(w)
		return nil
	}

	var err error
	logFile, err = os.OpenFile(cfg.Output.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return rperrors.IOWrap(err, "cli.configureLogOutput", "failed to open log file").
			WithDetail("path", cfg.Output.LogFile)
	}
	logger.SetOutput(logFile)
	return nil
}

// initConfig reads in config file and ENV variables if set, then configures
// logging. The logger becomes the slog default so application code logs
// through it.
func initConfig(cmd *cobra.Command) error {
	logger.SetOutput(cmd.ErrOrStderr())

	if err := loadAndValidateConfig(cmd); err != nil {
		return err
	}

	applyGlobalFlags()
	configureLoggerFormat()
	configureLogLevel()

	if err := configureLogOutput(cmd.ErrOrStderr()); err != nil {
		return err
	}

	slog.SetDefault(slog.New(logger))
	return nil
}

// Cleanup closes any open resources. Should be called before program exit.
func Cleanup() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nextver %s\n", versionInfo.Version)
			if verbose {
				fmt.Fprintf(out, "  commit: %s\n", versionInfo.Commit)
				fmt.Fprintf(out, "  built:  %s\n", versionInfo.Date)
			}
		},
	}
}
