// Package main is the entry point for the wordpad editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/wordpad/internal/app"
	"github.com/dshills/wordpad/internal/config"
	"github.com/dshills/wordpad/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	settingsPath string
	logLevel     string
	logFile      string
	noWatch      bool
	files        []string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	logger, closeLog, err := newLogger(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	// Create terminal backend
	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(term, app.Options{
		SettingsPath:  cli.settingsPath,
		WatchSettings: !cli.noWatch,
		Files:         cli.files,
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(cli cliOptions) (*app.Logger, func(), error) {
	if cli.logFile == "" {
		return app.NewNullLogger(), func() {}, nil
	}
	f, err := os.OpenFile(cli.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(cli.logLevel)
	cfg.Output = f
	return app.NewLogger(cfg), func() { f.Close() }, nil
}

// defaultSettingsPath returns the settings file in the user config
// directory, or in the working directory when there is none.
func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(dir, "wordpad", config.DefaultFileName)
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.settingsPath, "settings", defaultSettingsPath(), "Path to settings file")
	flag.StringVar(&cli.settingsPath, "s", defaultSettingsPath(), "Path to settings file (shorthand)")
	flag.StringVar(&cli.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&cli.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&cli.noWatch, "no-watch", false, "Do not reload settings when the file changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Wordpad - rich text editor for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wordpad [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-B/T/U   bold, italic, underline\n")
		fmt.Fprintf(os.Stderr, "  F2/F3        font family, font size\n")
		fmt.Fprintf(os.Stderr, "  F4/F5        text color, highlight color\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-X/C/V   cut, copy, paste\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Z/Y     undo, redo\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-F/R     find, replace\n")
		fmt.Fprintf(os.Stderr, "  F6/F7/F8     insert table, spell check, word count\n")
		fmt.Fprintf(os.Stderr, "  F9           toggle theme\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-N/O/S/Q new, open, save, quit (F12 save as)\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Wordpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch cli.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.logLevel)
		os.Exit(1)
	}

	cli.files = flag.Args()
	return cli
}
