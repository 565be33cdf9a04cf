// Package main is the entry point for the zenvim editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/zenvim/zenvim/internal/app"
	"github.com/zenvim/zenvim/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	editor, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// SIGINT arrives as a key event in raw mode; SIGTERM does not, so
	// restore the terminal before dying.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM)
	go func() {
		<-signals
		os.Exit(1)
	}()
	defer signal.Stop(signals)

	if err := editor.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var debug bool
	var showVersion bool

	flag.StringVar(&opts.ConfigDir, "config", "", "Path to configuration directory")
	flag.BoolVar(&opts.Dashboard, "dashboard", false, "Show the dashboard even when files are given")
	flag.BoolVar(&debug, "debug", false, "Write a debug log next to the config file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "zenvim - a minimalist modal editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: zenvim [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  zenvim                 Open the dashboard\n")
		fmt.Fprintf(os.Stderr, "  zenvim file.go         Open a file\n")
		fmt.Fprintf(os.Stderr, "  zenvim -dashboard f.go Open the dashboard with f.go loaded\n")
	}

	flag.Parse()
	opts.Files = flag.Args()

	if showVersion {
		fmt.Printf("zenvim %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if debug {
		dir := opts.ConfigDir
		if dir == "" {
			dir = config.DefaultDir()
		}
		logger, err := app.NewFileLogger(filepath.Join(dir, "zenvim.log"), app.LogLevelDebug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			opts.Logger = logger
		}
	}

	return opts
}
