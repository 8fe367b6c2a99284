package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/3nids/CadInput/internal/config"
	"github.com/3nids/CadInput/internal/logging"
	"github.com/3nids/CadInput/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "cadinput",
	Short: "Precise constrained point input for 2D digitizing",
	Long: `cadinput constrains digitized points with numeric locks on X, Y, angle and
distance, snaps them onto nearby segments and replays scripted digitizing
sessions into a layer store.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// setup loads the configuration and builds the logger shared by all commands
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return cfg, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logging.New(cfg.LogLevel, format)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
