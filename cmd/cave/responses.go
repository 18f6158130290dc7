package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/filter"
	"github.com/zulandar/cave/internal/models"
	"github.com/zulandar/cave/internal/view"
)

func addResponseFilterFlags(cmd *cobra.Command, sel *filter.ResponseSelection) {
	cmd.Flags().StringVar(&sel.Node, "node", filter.All, "only responses from this node id")
	cmd.Flags().StringVar(&sel.Miner, "miner", filter.All, "only responses from this miner hotkey")
}

func newResponsesCmd() *cobra.Command {
	var (
		configPath string
		typ        string
		sel        filter.ResponseSelection
		selected   int64
	)

	cmd := &cobra.Command{
		Use:   "responses",
		Short: "List miner responses",
		Long:  "Lists responses joined to their challenge type. With --type, only that type is listed and each response carries its patch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := view.ResponsesQuery{Filter: sel, SelectedID: selected}
			if typ != "" {
				t, err := models.ParseChallengeType(typ)
				if err != nil {
					return err
				}
				q.Type = t
			}
			_, _, loader, err := loaderFromConfig(configPath)
			if err != nil {
				return err
			}
			return printResponses(cmd.OutOrStdout(), cmd.ErrOrStderr(), loader.Responses(context.Background(), q))
		},
	}

	addConfigFlag(cmd, &configPath)
	addTypeFlag(cmd, &typ, "")
	addResponseFilterFlags(cmd, &sel)
	cmd.Flags().Int64Var(&selected, "show", 0, "print the full record of this response id")
	return cmd
}

func newPendingCmd() *cobra.Command {
	var (
		configPath string
		sel        filter.ResponseSelection
	)

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List responses waiting for evaluation, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, loader, err := loaderFromConfig(configPath)
			if err != nil {
				return err
			}
			return printResponses(cmd.OutOrStdout(), cmd.ErrOrStderr(), loader.Pending(context.Background(), sel))
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&sel.Type, "type", "t", filter.All, "only responses to this challenge type")
	addResponseFilterFlags(cmd, &sel)
	return cmd
}

func printResponses(out, errOut io.Writer, v view.ResponsesView) error {
	if v.Status.Failed() {
		return printNotice(out, errOut, v.Notice)
	}
	for _, line := range v.Filters {
		fmt.Fprintln(out, line)
	}
	if v.Status == view.StatusEmpty {
		return printNotice(out, errOut, v.Notice)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHALLENGE\tTYPE\tNODE\tMINER\tRECEIVED\tPROCESSING\tELAPSED\tSCORE")
	for _, r := range v.Responses {
		elapsed := r.Elapsed
		if elapsed == "" {
			elapsed = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.ChallengeID, r.Type, formatOptInt(r.NodeID), truncate(r.MinerHotkey, 16),
			formatTime(&r.ReceivedAt), formatOptFloat(r.ProcessingTime), elapsed, formatOptFloat(r.Score))
	}
	w.Flush()
	fmt.Fprintf(out, "\nDisplayed %d responses out of %d\n", v.Displayed, v.Total)

	if v.Selected != nil {
		fmt.Fprintln(out)
		printResponseDetail(out, *v.Selected)
	}
	return nil
}

func printResponseDetail(out io.Writer, r view.ResponseRow) {
	fmt.Fprintf(out, "Response:     %d\n", r.ID)
	fmt.Fprintf(out, "Challenge:    %s (%s)\n", r.ChallengeID, r.Type)
	fmt.Fprintf(out, "Miner:        %s (node %s)\n", r.MinerHotkey, formatOptInt(r.NodeID))
	fmt.Fprintf(out, "Received:     %s\n", formatTime(&r.ReceivedAt))
	fmt.Fprintf(out, "Completed:    %s\n", formatTime(r.CompletedAt))
	fmt.Fprintf(out, "Processing:   %s\n", formatOptFloat(r.ProcessingTime))
	if r.Elapsed != "" {
		fmt.Fprintf(out, "Elapsed:      %s\n", r.Elapsed)
	}
	fmt.Fprintf(out, "Evaluated:    %t\n", r.Evaluated)
	fmt.Fprintf(out, "Score:        %s\n", formatOptFloat(r.Score))
	fmt.Fprintf(out, "Evaluated at: %s\n", formatTime(r.EvaluatedAt))
	if r.HasPatch() {
		fmt.Fprintf(out, "\nPatch:\n%s\n", indent(formatOptString(r.Patch)))
	}
}
