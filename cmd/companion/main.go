// cmd/companion/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tamzrod/deck-companion/internal/companion"
	"github.com/tamzrod/deck-companion/internal/config"
	"github.com/tamzrod/deck-companion/internal/poller"
	"github.com/tamzrod/deck-companion/internal/writer"
	"github.com/tamzrod/deck-companion/internal/writer/serial"
)

var version = "dev"

const (
	exitOK     = 0
	exitSerial = 1
	exitUsage  = 2
)

func init() {
	// Core Audio is apartment-threaded: the loop and every COM call stay on
	// the main OS thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	configPath string
	port       string
	baud       int
	interval   time.Duration
	logLevel   string
	listPorts  bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags

	fs := flag.NewFlagSet("companion", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to YAML config (optional)")
	fs.StringVar(&f.port, "port", "", "serial port, overrides serial.port")
	fs.IntVar(&f.baud, "baud", 0, "baud rate, overrides serial.baud_rate")
	fs.DurationVar(&f.interval, "interval", 0, "poll interval, overrides poll.interval_ms")
	fs.StringVar(&f.logLevel, "log-level", "", "debug | info | warn | error")
	fs.BoolVar(&f.listPorts, "list-ports", false, "list serial ports and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		return f, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

// loadConfig layers file, then flags, then validates and normalizes.
func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()

	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if f.port != "" {
		cfg.Serial.Port = f.port
	}
	if f.baud != 0 {
		cfg.Serial.BaudRate = f.baud
	}
	if f.interval != 0 {
		cfg.Poll.IntervalMs = int(f.interval / time.Millisecond)
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	if err := config.Validate(&cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(&cfg)

	return cfg, nil
}

func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.Encoding = c.Format
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Format == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.DisableCaller = true
		zc.DisableStacktrace = true
	}
	return zc.Build()
}

func printPorts(w io.Writer) {
	ports, err := serial.ListPorts()
	if err != nil {
		fmt.Fprintf(w, "could not list serial ports: %v\n", err)
		return
	}
	if len(ports) == 0 {
		fmt.Fprintln(w, "no serial ports found")
		return
	}
	fmt.Fprintln(w, "available serial ports:")
	for _, p := range ports {
		if p.Description != "" {
			fmt.Fprintf(w, "  %s\t%s\n", p.Device, p.Description)
		} else {
			fmt.Fprintf(w, "  %s\n", p.Device)
		}
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if f.version {
		fmt.Fprintln(stdout, "deck-companion", version)
		return exitOK
	}
	if f.listPorts {
		printPorts(stdout)
		return exitOK
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Starting: channel first, sources only after it opened
	// --------------------

	logger.Info("starting",
		zap.String("version", version),
		zap.String("port", cfg.Serial.Port),
		zap.Int("baud", cfg.Serial.BaudRate),
		zap.Int("interval_ms", cfg.Poll.IntervalMs),
	)

	c, err := companion.Start(companion.Options{
		OpenChannel: func() (writer.ChannelCloser, error) {
			return writer.OpenChannel(cfg.Serial)
		},
		BuildSources: func() (poller.Sources, func() error) {
			return poller.BuildSources(ctx, cfg, logger)
		},
		NewPoller: func(src poller.Sources) (*poller.Poller, error) {
			return poller.Build(cfg, src, logger)
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		if errors.Is(err, companion.ErrChannelOpen) {
			printPorts(stderr)
			return exitSerial
		}
		return exitUsage
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	// --------------------
	// Running
	// --------------------

	c.Run(ctx)

	logger.Info("stopped")
	return exitOK
}
