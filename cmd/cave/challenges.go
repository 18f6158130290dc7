package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/models"
	"github.com/zulandar/cave/internal/view"
)

func addTypeFlag(cmd *cobra.Command, typ *string, def string) {
	cmd.Flags().StringVarP(typ, "type", "t", def, "challenge type (codegen or regression)")
}

func newChallengesCmd() *cobra.Command {
	var (
		configPath string
		typ        string
	)

	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List challenges of one type",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseChallengeType(typ)
			if err != nil {
				return err
			}
			_, _, loader, err := loaderFromConfig(configPath)
			if err != nil {
				return err
			}
			v := loader.Challenges(context.Background(), t, "")
			return printChallenges(cmd.OutOrStdout(), cmd.ErrOrStderr(), v)
		},
	}

	addConfigFlag(cmd, &configPath)
	addTypeFlag(cmd, &typ, string(models.ChallengeCodegen))
	return cmd
}

func printChallenges(out, errOut io.Writer, v view.ChallengesView) error {
	if v.Status != view.StatusOK {
		return printNotice(out, errOut, v.Notice)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tREPOSITORY\tCOMMIT\tFILES\tPROBLEM")
	for _, c := range v.Challenges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID, formatTime(c.CreatedAt), truncate(c.RepositoryURL, 40),
			truncate(formatOptString(c.CommitHash), 12), len(c.ContextFilePaths),
			truncate(firstLine(c.ProblemStatement), 50))
	}
	w.Flush()
	fmt.Fprintf(out, "\n%d %s challenges\n", v.Total, v.Type)
	return nil
}

func newChallengeCmd() *cobra.Command {
	var (
		configPath string
		typ        string
	)

	cmd := &cobra.Command{
		Use:   "challenge <id>",
		Short: "Show one challenge in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseChallengeType(typ)
			if err != nil {
				return err
			}
			_, _, loader, err := loaderFromConfig(configPath)
			if err != nil {
				return err
			}
			v := loader.Challenges(context.Background(), t, args[0])
			out := cmd.OutOrStdout()
			if v.Status.Failed() {
				return printNotice(out, cmd.ErrOrStderr(), v.Notice)
			}
			if v.Selected == nil {
				return printNotice(out, cmd.ErrOrStderr(), v.Detail)
			}
			printChallengeDetail(out, *v.Selected)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	addTypeFlag(cmd, &typ, string(models.ChallengeCodegen))
	return cmd
}

func printChallengeDetail(out io.Writer, c models.Challenge) {
	fmt.Fprintf(out, "Challenge:   %s\n", c.ID)
	fmt.Fprintf(out, "Type:        %s\n", c.Type)
	fmt.Fprintf(out, "Created:     %s\n", formatTime(c.CreatedAt))
	fmt.Fprintf(out, "Repository:  %s\n", c.RepositoryURL)
	fmt.Fprintf(out, "Commit:      %s\n", formatOptString(c.CommitHash))

	fmt.Fprintf(out, "\nProblem statement:\n%s\n", indent(c.ProblemStatement))

	fmt.Fprintln(out, "\nContext files:")
	printList(out, c.ContextFilePaths)
	if c.Type != models.ChallengeRegression {
		fmt.Fprintln(out, "\nDynamic checklist:")
		printList(out, c.DynamicChecklist)
	}
}

func printList(out io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
