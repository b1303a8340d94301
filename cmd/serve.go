package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/daemon"
)

var (
	flagServeAddr         string
	flagServeInterval     time.Duration
	flagServeEventsBuffer int
	flagServeLogFormat    string
	flagServeLogLevel     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve budget, payoff, and overview data over a local HTTP API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	f.DurationVar(&flagServeInterval, "interval", 10*time.Second, "Polling interval for change events")
	f.IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	f.StringVar(&flagServeLogFormat, "log-format", "text", "Log format: text or json")
	f.StringVar(&flagServeLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(serveCmd)
}

func newLogger(format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return nil, fmt.Errorf("invalid --log-format %q: want text or json", format)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(flagServeLogFormat, flagServeLogLevel)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	svc := daemon.New(daemon.Config{
		Addr:         addr,
		Interval:     flagServeInterval,
		EventsBuffer: flagServeEventsBuffer,
		Logger:       logger,
	}, st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("budgetburn serving", "db", dbPath())
	return svc.Run(ctx)
}
