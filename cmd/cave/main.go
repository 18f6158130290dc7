package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cave",
		Short:         "Cave: validator and miner dashboard for the subnet",
		Long:          "Cave reads the subnet's validator database and JSON log file and shows challenges, responses, availability checks, and logs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newChallengesCmd())
	cmd.AddCommand(newChallengeCmd())
	cmd.AddCommand(newResponsesCmd())
	cmd.AddCommand(newPendingCmd())
	cmd.AddCommand(newAvailabilityCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cave %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		// Failed views have already printed their notice.
		if !errors.Is(err, errViewFailed) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
