package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/config"
	"github.com/zulandar/cave/internal/logging"
	"github.com/zulandar/cave/internal/view"
	"go.uber.org/zap"
)

const defaultConfigPath = "cave.yaml"

// errViewFailed is returned after a failed view's notice has been printed.
var errViewFailed = errors.New("view failed")

func addConfigFlag(cmd *cobra.Command, configPath *string) {
	cmd.Flags().StringVarP(configPath, "config", "c", defaultConfigPath, "path to Cave config file")
}

// loaderFromConfig loads the config file and builds the logger and view
// loader from it. A missing subnet root is not an error here; the views
// report it.
func loaderFromConfig(configPath string, opts ...view.Option) (*config.Config, *zap.Logger, *view.Loader, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logging: %w", err)
	}
	opts = append([]view.Option{view.WithLogger(log)}, opts...)
	return cfg, log, view.NewLoader(cfg, opts...), nil
}

// printNotice writes a non-ok notice. Failed notices go to errOut and turn
// into errViewFailed so the command exits non-zero.
func printNotice(out, errOut io.Writer, n view.Notice) error {
	switch {
	case n.Status == view.StatusOK:
		if n.Message != "" {
			fmt.Fprintln(out, n.Message)
		}
		return nil
	case n.Status.Failed():
		fmt.Fprintf(errOut, "Error: %s\n", n.Message)
		for _, h := range n.Hints {
			fmt.Fprintf(errOut, "  %s\n", h)
		}
		return errViewFailed
	default:
		fmt.Fprintln(out, n.Message)
		return nil
	}
}
