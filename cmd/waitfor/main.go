// Command waitfor blocks until a signal arrives or a command finishes, bounded by a timeout.
//
// Waiting for a SIGUSR1 for up to a minute:
//
//	waitfor --signal SIGUSR1 --timeout 1m
//
// Running a command under a 30 second deadline:
//
//	waitfor --timeout 30s -- some-slow-command arg1 arg2
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/saylorsolutions/waitx"
	"github.com/saylorsolutions/waitx/eventx"
	"github.com/saylorsolutions/waitx/promise"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	flags := flag.NewFlagSet("waitfor", flag.ContinueOnError)
	flags.SetInterspersed(false)
	var (
		configPath = flags.String("config", "", "Path to a YAML config file")
		timeout    = flags.Duration("timeout", 0, "Give up after this long, 0 waits forever")
		signals    = flags.StringSlice("signal", nil, "Signal names to wait for, defaults to SIGINT and SIGTERM")
		event      = flags.String("event", "signal", "Event name used in logs and timeout messages")
		logFile    = flags.String("log-file", "", "Log to this file with rotation instead of stderr")
		jsonLog    = flags.Bool("json", false, "Force JSON log output")
		verbose    = flags.BoolP("verbose", "v", false, "Enable debug logging")
	)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg := &Config{}
	if len(*configPath) > 0 {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}
	if flags.Changed("timeout") {
		cfg.Timeout = Duration(*timeout)
	}
	if flags.Changed("signal") {
		cfg.Signals = *signals
	}
	if flags.Changed("event") || len(cfg.Event) == 0 {
		cfg.Event = *event
	}
	if flags.Changed("log-file") {
		cfg.LogFile = *logFile
	}
	if flags.Changed("json") {
		cfg.JSONLog = *jsonLog
	}

	log := buildLogger(cfg, *verbose)
	if err := run(cfg, log, flags.Args()); err != nil {
		log.Error("wait failed", "error", err)
		os.Exit(1)
	}
}

func buildLogger(cfg *Config, verbose bool) *slog.Logger {
	var out io.Writer = os.Stderr
	if len(cfg.LogFile) > 0 {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
	}
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	onTerminal := len(cfg.LogFile) == 0 && term.IsTerminal(int(os.Stderr.Fd()))
	if cfg.JSONLog || !onTerminal {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func run(cfg *Config, log *slog.Logger, args []string) error {
	engine := waitx.New(waitx.WithLogger(log))
	if len(args) > 0 {
		return runCommand(engine, log, args, time.Duration(cfg.Timeout))
	}
	return waitForSignal(engine, log, cfg)
}

func runCommand(engine *waitx.Engine, log *slog.Logger, args []string, timeout time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := strings.Join(args, " ")
	log.Info("running command", "command", task, "timeout", timeout)
	done := promise.Go(func() (any, error) {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return nil, cmd.Run()
	})
	_, err := engine.WaitWithTimeout(ctx, done, task, timeout)
	if err != nil {
		return err
	}
	log.Info("command finished", "command", task)
	return nil
}

func waitForSignal(engine *waitx.Engine, log *slog.Logger, cfg *Config) error {
	sigs, err := parseSignals(cfg.Signals)
	if err != nil {
		return err
	}
	em := eventx.NewEmitter()
	stop := eventx.NotifySignals(em, cfg.Event, sigs...)
	defer stop()

	log.Info("waiting for signal", "signals", cfg.Signals, "timeout", time.Duration(cfg.Timeout))
	payload, err := engine.WaitForEvent(context.Background(), em, cfg.Event, nil, time.Duration(cfg.Timeout), nil)
	if err != nil {
		return err
	}
	log.Info("signal received", "signal", fmt.Sprint(payload))
	return nil
}
