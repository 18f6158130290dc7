package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/dashboard"
	"github.com/zulandar/cave/internal/view"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the views as a JSON API",
		Long:  "Starts an HTTP server exposing logs, challenges, responses, pending responses, and availability checks as JSON, plus Prometheus metrics at /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config, 8501)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cfg, log, loader, err := loaderFromConfig(configPath, view.WithMetrics(view.NewMetrics(reg)))
	if err != nil {
		return err
	}
	defer log.Sync()

	if port == 0 {
		port = cfg.Dashboard.Port
	}
	if _, err := loader.Paths(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return dashboard.Start(ctx, dashboard.StartOpts{
		Loader:   loader,
		Port:     port,
		Out:      cmd.OutOrStdout(),
		Log:      log,
		Registry: reg,
	})
}
