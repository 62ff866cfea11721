package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Hanaasagi/repat/cmd"
	"github.com/Hanaasagi/repat/internal"
	"github.com/Hanaasagi/repat/internal/logger"
	"github.com/Hanaasagi/repat/pkg/filesearch"
	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	appName     = "repat"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

// AppConfig holds the values collected from the command line
type AppConfig struct {
	diff        bool
	color       string
	search      bool
	stripANSI   bool
	configPath  string
	logLevel    string
	showVersion bool
}

func logFilePath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// mergeFlags lets explicitly set flags override the config file
func mergeFlags(c *cobra.Command, app *AppConfig, config *Config) error {
	flags := c.Flags()
	if flags.Changed("color") {
		config.Core.Color = app.color
	}
	if flags.Changed("strip-ansi") {
		config.Core.StripANSI = app.stripANSI
	}
	if flags.Changed("log-level") {
		config.Core.LogLevel = app.logLevel
	}
	return config.Validate()
}

// resolveFiles turns the FILE arguments into the list of sources to process.
// With search enabled the arguments are search roots instead.
func resolveFiles(ctx context.Context, app *AppConfig, config *Config, pattern string, args []string) ([]string, error) {
	if !app.search {
		if len(args) == 0 {
			return []string{internal.StdinPath}, nil
		}
		return args, nil
	}

	files, err := filesearch.Search(ctx, config.searchTool(), pattern, args)
	if err != nil {
		return nil, fmt.Errorf("searching files: %w", err)
	}
	slog.Info("Search tool listed files", "count", len(files))
	return files, nil
}

// runApp runs the main application logic
func runApp(c *cobra.Command, app *AppConfig, args []string) (err error) {
	if app.showVersion {
		fmt.Fprintf(c.OutOrStdout(), "%s version: %s\n", appName, FullVersion)
		return nil
	}

	// start logging before anything can fail; the config may still change the level
	previous := slog.Default()
	if closer, lerr := logger.InitLogger(logFilePath(), app.logLevel); lerr == nil {
		defer func() {
			if err != nil {
				slog.Error("Error executing command", "error", err)
			}
			closer.Close() // nolint: errcheck
			slog.SetDefault(previous)
		}()
	}

	if len(args) < 2 {
		return fmt.Errorf("requires FIND and REPLACE_WITH arguments, received %d", len(args))
	}

	find, replaceWith, paths := args[0], args[1], args[2:]

	// the pattern is checked before touching any file
	re, err := internal.CompilePattern(find)
	if err != nil {
		return err
	}

	configPath := app.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	config, err := LoadConfigFromFile(configPath)
	if err != nil {
		return err
	}
	if err := mergeFlags(c, app, config); err != nil {
		return err
	}

	if err := logger.SetLevel(config.Core.LogLevel); err != nil {
		return err
	}

	slog.Info("Starting", "version", FullVersion, "pattern", find, "diff", app.diff, "search", app.search)

	term := setupTerminal(c.OutOrStdout())
	palette, err := internal.NewPalette(
		config.Colors.Groups,
		config.Colors.Insertion,
		colorEnabled(config.Core.Color, term),
	)
	if err != nil {
		return fmt.Errorf("building palette: %w", err)
	}
	slog.Debug("Palette ready", "colors", palette.Size(), "mode", config.Core.Color)

	processor := internal.NewProcessor(internal.ProcessorOptions{
		Pattern:   re,
		Template:  replaceWith,
		Diff:      app.diff,
		StripANSI: config.Core.StripANSI,
		Renderer:  internal.NewRenderer(palette),
	})

	files, err := resolveFiles(c.Context(), app, config, find, paths)
	if err != nil {
		return err
	}

	return processAll(term.Writer, processor, files)
}

func processAll(out io.Writer, processor *internal.Processor, files []string) error {
	writer := bufio.NewWriterSize(out, defaultSize)

	for _, path := range files {
		if err := processor.ProcessPath(writer, path); err != nil {
			// keep what was already rendered for earlier sources
			_ = writer.Flush()
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: flushing output: %v", internal.ErrIO, err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	app := &AppConfig{}

	rootCmd := &cobra.Command{
		Use:   appName + " FIND REPLACE_WITH [FILE...]",
		Short: "Regex pattern viewer",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Preview a regex find-and-replace over files or stdin. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Example: "  repat '(\\w+)@(\\w+)' '$2 at $1' users.txt\n" +
			"  repat -d 'foo' 'bar' src/main.go > fix.patch\n" +
			"  git log | repat --strip-ansi 'fix(es)?' 'FIX'",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runApp(c, app, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.diff, "diff", "d", false, "Dumps result as Unified Format diff/patch file")
	rootCmd.Flags().StringVar(&app.color, "color", colorAuto, "When to use colors: auto, always or never")
	rootCmd.Flags().BoolVarP(&app.search, "search", "s", false, "Use the search tool to list files matching FIND under the FILE arguments")
	rootCmd.Flags().BoolVar(&app.stripANSI, "strip-ansi", false, "Remove terminal escape sequences from input lines before matching")
	rootCmd.Flags().StringVarP(&app.configPath, "config", "c", "", "Path to the config file (default $XDG_CONFIG_HOME/repat/config.toml)")
	rootCmd.Flags().StringVar(&app.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVarP(&app.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	return rootCmd
}

func main() {
	// cobra has already printed the error and runApp has logged it
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
