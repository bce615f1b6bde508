package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/cfbrowse/internal/cli/auth"
	"github.com/steviee/cfbrowse/internal/cli/browse"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/cli/config"
	"github.com/steviee/cfbrowse/internal/cli/games"
	"github.com/steviee/cfbrowse/internal/cli/mods"
)

var (
	// Global flags
	cfgFile string
	apiKey  string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfbrowse",
		Short: "Browse the CurseForge mod catalog",
		Long: `cfbrowse is a terminal client for the CurseForge mod catalog.

It lets you:
  - List the games the catalog covers
  - Search and sort the mods of a game
  - Inspect mod details and page through a mod's files
  - Browse everything interactively in a TUI

Every request needs a CurseForge API key. Store one with 'cfbrowse auth set',
pass it with --api-key or export CFBROWSE_API_KEY.`,
		Example: `  # Store your API key
  cfbrowse auth set $CURSEFORGE_KEY

  # List games
  cfbrowse games list

  # Search Minecraft mods, most downloaded first
  cfbrowse mods search 432 "just enough" --sort total-downloads --order desc

  # Page through a mod's files
  cfbrowse mods files 238222 --index 50 --page-size 50

  # Open the interactive browser
  cfbrowse browse`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if err := initConfig(cmd.Root()); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			applyConfigLogLevel(cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/cfbrowse/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "CurseForge API key for this invocation (overrides the stored key)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))
	rootCmd.AddCommand(auth.NewCommand())
	rootCmd.AddCommand(config.NewCommand())
	rootCmd.AddCommand(games.NewCommand())
	rootCmd.AddCommand(mods.NewCommand())
	rootCmd.AddCommand(browse.NewCommand())

	return rootCmd
}

// initLogger initializes the global logger based on flags
func initLogger(out io.Writer) error {
	var level slog.Level

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	setLogger(out, level)
	return nil
}

func setLogger(out io.Writer, level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyConfigLogLevel uses logging.level from the config file or
// CFBROWSE_LOGGING_LEVEL when neither --quiet nor --verbose is given.
func applyConfigLogLevel(out io.Writer) {
	if quiet || verbose {
		return
	}

	name := viper.GetString(common.KeyLogLvl)
	if name == "" {
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		logger.Warn("ignoring invalid log level", "level", name)
		return
	}
	setLogger(out, level)
}

// initConfig loads .env, then points viper at the config file and the
// CFBROWSE_* environment.
func initConfig(root *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env file", "error", err)
	}

	viper.Reset()

	path := cfgFile
	if path == "" {
		var err error
		path, err = common.ConfigPath(nil)
		if err != nil {
			return err
		}
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	common.BindEnv()
	if err := viper.BindPFlag(common.KeyAPIKey, root.PersistentFlags().Lookup("api-key")); err != nil {
		return fmt.Errorf("bind api-key flag: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is created with defaults on first use.
		if !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config file: %w", err)
			}
		}
	} else {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	return nil
}

// Execute runs the root command and reports a failure on stderr.
func Execute(version, commit, date, builtBy string) int {
	cmd := NewRootCommand(version, commit, date, builtBy)
	if err := cmd.Execute(); err != nil {
		if !jsonOut {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
