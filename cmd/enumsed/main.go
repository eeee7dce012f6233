// # cmd/enumsed/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"enumsed/internal/config"
)

var (
	configPath = flag.String("config", "", "Path to TOML config file")
	outPath    = flag.String("o", "", "Write the sed script to this file instead of stdout")
	watchMode  = flag.Bool("watch", false, "Keep running and regenerate the script when stubs change")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var bindings stringList
	flag.Var(&bindings, "b", "Substitute a binding import, e.g. -b PySide2,PySide6 (repeatable)")
	flag.Var(&bindings, "binding", "Alias of -b")
	flag.Parse()

	if *version {
		fmt.Printf("enumsed v%s\n", VERSION)
		os.Exit(0)
	}

	// stdout carries the script; all logging goes to stderr.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if flag.NArg() > 0 {
		cfg.StubPaths = flag.Args()
	}
	cfg.Bindings = append(cfg.Bindings, bindings...)
	if *outPath != "" {
		cfg.Output.Sed = *outPath
	}

	if len(cfg.StubPaths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: enumsed [-b OLD,NEW] [-o script.sed] <stub file or directory>...")
		os.Exit(2)
	}
	if *watchMode && cfg.Output.Sed == "" {
		fmt.Fprintln(os.Stderr, "-watch requires -o: stdout cannot be rewritten in place")
		os.Exit(2)
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		slog.Error("failed to generate script", "error", err)
		os.Exit(1)
	}

	if !*watchMode {
		return
	}

	w, err := app.StartWatcher()
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}
	defer w.Close()
	slog.Info("watching stub paths", "paths", cfg.StubPaths, "output", cfg.Output.Sed)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down")
}
