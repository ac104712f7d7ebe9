// Package main is the IO Manager: the process that owns the on-disk
// data files, the column block cache, the system catalog, and the two
// request front ends (native wire protocol and REST). It is normally
// started and supervised by nexusd, not run directly, but accepts the
// same configuration file either way.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nexusdb/internal/config"
	"nexusdb/internal/crypto"
	"nexusdb/internal/datafile"
	"nexusdb/internal/server"
)

type runFlags struct {
	configPath   string
	instanceName string
}

// conventionalConfigDir is where an instance's configuration lives when
// only --instance is given, the same convention nexusd's supervisor
// relies on when it launches nexusiomgr with just --instance <name>.
const conventionalConfigDir = "/etc/nexusdb"

func main() {
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "nexusiomgr",
		Short: "NexusDB IO Manager: serves the native protocol and REST front ends",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(flags)
		},
	}
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to the instance TOML configuration file")
	rootCmd.Flags().StringVar(&flags.instanceName, "instance", "", "instance name; configuration is read from /etc/nexusdb/<instance>/nexus.toml unless --config overrides it")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags *runFlags) error {
	logger := log.New(os.Stderr, "nexusiomgr: ", log.LstdFlags)

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if err := prepareDataRoot(cfg); err != nil {
		return err
	}

	if _, err := crypto.DeriveKey(cfg.CipherKeyLengthBits, cfg.CipherSeed); err != nil {
		return fmt.Errorf("nexusiomgr: deriving instance cipher key: %w", err)
	}

	engine := server.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go waitForShutdown(ctx, cancel, logger)

	return serve(ctx, cfg, engine, logger)
}

func loadConfig(flags *runFlags) (config.Config, error) {
	path := flags.configPath
	if path == "" {
		if flags.instanceName == "" {
			return config.Config{}, fmt.Errorf("nexusiomgr: one of --config or --instance is required")
		}
		path = fmt.Sprintf("%s/%s/nexus.toml", conventionalConfigDir, flags.instanceName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("nexusiomgr: %w", err)
	}
	return cfg, nil
}

func prepareDataRoot(cfg config.Config) error {
	if datafile.IsInitialized(cfg.DataRoot) {
		return nil
	}
	if err := os.MkdirAll(cfg.DataRoot, 0o750); err != nil {
		return fmt.Errorf("nexusiomgr: creating data root %q: %w", cfg.DataRoot, err)
	}
	if err := datafile.MarkInitialized(cfg.DataRoot); err != nil {
		return fmt.Errorf("nexusiomgr: initializing data root %q: %w", cfg.DataRoot, err)
	}
	return nil
}

func serve(ctx context.Context, cfg config.Config, engine *server.Engine, logger *log.Logger) error {
	wireLn, err := net.Listen("tcp", cfg.WireListenAddress)
	if err != nil {
		return fmt.Errorf("nexusiomgr: listening on wire address %q: %w", cfg.WireListenAddress, err)
	}

	httpServer := &http.Server{
		Addr:    cfg.RESTListenAddress,
		Handler: server.NewRESTHandler(engine, logger),
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- server.NewWireListener(engine, logger).Serve(wireLn)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Printf("serving wire protocol on %s, REST on %s", cfg.WireListenAddress, cfg.RESTListenAddress)

	select {
	case <-ctx.Done():
		_ = wireLn.Close()
		_ = httpServer.Shutdown(context.Background())
		return nil
	case err := <-errCh:
		_ = wireLn.Close()
		_ = httpServer.Shutdown(context.Background())
		return err
	}
}

func waitForShutdown(ctx context.Context, cancel context.CancelFunc, logger *log.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Printf("received %s, shutting down", sig)
		cancel()
	case <-ctx.Done():
	}
}
