package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/view"
)

func newAvailabilityCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show mean response time per node",
		Long:  "Summarizes availability checks: total and available counts and the mean response time of each node. With --all, every check is listed too.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, loader, err := loaderFromConfig(configPath)
			if err != nil {
				return err
			}
			return printAvailability(cmd.OutOrStdout(), cmd.ErrOrStderr(), loader.Availability(context.Background()), all)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&all, "all", false, "list every check")
	return cmd
}

func printAvailability(out, errOut io.Writer, v view.AvailabilityView, all bool) error {
	if v.Status != view.StatusOK {
		return printNotice(out, errOut, v.Notice)
	}

	fmt.Fprintf(out, "Checks: %d (%d available)\n\n", v.Summary.Total, v.Summary.Available)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tMEAN RESPONSE TIME")
	for _, n := range v.Summary.Nodes {
		fmt.Fprintf(w, "%d\t%s\n", n.NodeID, formatMs(n.MeanMs))
	}
	w.Flush()

	if !all {
		return nil
	}
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNODE\tHOTKEY\tCHECKED\tAVAILABLE\tRESPONSE TIME\tERROR")
	for _, c := range v.Checks {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%t\t%s\t%s\n",
			c.ID, c.NodeID, truncate(c.Hotkey, 16), formatTime(c.CheckedAt),
			c.IsAvailable, formatMs(c.ResponseTimeMs), formatOptString(c.Error))
	}
	w.Flush()
	return nil
}
