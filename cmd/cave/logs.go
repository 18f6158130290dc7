package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/filter"
	"github.com/zulandar/cave/internal/view"
)

func newLogsCmd() *cobra.Command {
	var (
		configPath string
		sel        filter.LogSelection
		limit      int
		options    bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show subnet logs, newest first",
		Long:  "Reads the validator's JSON log file and prints the entries matching the filters, most recent first. Coroutine filters match when any listed coroutine was active.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, configPath, sel, limit, options)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&sel.File, "file", "", "only entries from this file name")
	cmd.Flags().StringVar(&sel.Level, "level", "", "only entries with this level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	cmd.Flags().StringSliceVar(&sel.Coroutines, "coroutine", nil, "only entries emitted while one of these coroutines was active (repeatable)")
	cmd.Flags().IntVar(&sel.LoopNum, "loop", 0, "only entries from this evaluation loop number")
	cmd.Flags().IntVarP(&limit, "lines", "n", 0, "show at most this many entries (0 for all)")
	cmd.Flags().BoolVar(&options, "options", false, "list the available filter values instead of entries")

	cmd.AddCommand(newLogsClearCmd())
	return cmd
}

func runLogs(cmd *cobra.Command, configPath string, sel filter.LogSelection, limit int, options bool) error {
	_, _, loader, err := loaderFromConfig(configPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	v := loader.Logs(context.Background(), sel)
	if v.Status.Failed() {
		return printNotice(out, cmd.ErrOrStderr(), v.Notice)
	}
	if options {
		printLogOptions(out, v.Options)
		return nil
	}

	for _, line := range v.Filters {
		fmt.Fprintln(out, line)
	}
	if len(v.Filters) > 0 {
		fmt.Fprintln(out)
	}

	p := newPainter(out)
	lines := v.Lines
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	for _, l := range lines {
		printLogLine(out, p, l)
	}

	fmt.Fprintln(out, v.Summary)
	if v.Status == view.StatusEmpty {
		return printNotice(out, cmd.ErrOrStderr(), v.Notice)
	}
	return nil
}

func printLogLine(out io.Writer, p painter, l view.LogLine) {
	header := fmt.Sprintf("%s %s from %s", p.dim(l.Timestamp), p.level(l.Level, l.Color), l.Location)
	if l.Coroutines != "" {
		header += " " + p.accent(l.Coroutines)
	}
	fmt.Fprintln(out, header)

	msg := l.Message
	if l.MessageJSON != "" {
		msg = l.MessageJSON
	}
	sc := bufio.NewScanner(strings.NewReader(msg))
	for sc.Scan() {
		fmt.Fprintf(out, "    %s\n", sc.Text())
	}
	fmt.Fprintln(out)
}

func printLogOptions(out io.Writer, o filter.LogOptions) {
	loops := make([]string, len(o.LoopNums))
	for i, n := range o.LoopNums {
		loops[i] = fmt.Sprint(n)
	}
	fmt.Fprintf(out, "Files:       %s\n", joinOrDash(o.Files))
	fmt.Fprintf(out, "Levels:      %s\n", joinOrDash(o.Levels))
	fmt.Fprintf(out, "Coroutines:  %s\n", joinOrDash(o.Coroutines))
	fmt.Fprintf(out, "Loops:       %s\n", joinOrDash(loops))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func newLogsClearCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the subnet log file",
		Long:  "Replaces the validator's log file with an empty array. The validator keeps appending to it afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear logs without --yes")
			}
			_, _, loader, err := loaderFromConfig(configPath)
			if err != nil {
				return err
			}
			return printNotice(cmd.OutOrStdout(), cmd.ErrOrStderr(), loader.ClearLogs(context.Background()))
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing the log file")
	return cmd
}
