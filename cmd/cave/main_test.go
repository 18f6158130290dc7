package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/zulandar/cave/internal/config"
	"github.com/zulandar/cave/internal/store/storetest"
)

// writeConfig writes a cave.yaml pointing at root and returns its path.
func writeConfig(t *testing.T, root string) string {
	t.Helper()
	t.Setenv(config.EnvSubnetRoot, "")
	path := filepath.Join(t.TempDir(), "cave.yaml")
	content := fmt.Sprintf("subnet_root: %s\nlogging:\n  level: error\n", root)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "cave dev") {
		t.Errorf("expected output to contain 'cave dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if out != "cave 1.0.0 (commit: abc123, built: 2026-01-01)\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRootCmdHelp(t *testing.T) {
	out, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, want := range []string{"Cave", "logs", "challenges", "pending", "availability", "dashboard"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected help output to contain %q, got: %s", want, out)
		}
	}
}

func TestExecuteError(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "failing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("intentional error")
		},
	}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	if code := execute(cmd); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut.String(), "intentional error") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestExecuteViewFailedPrintsOnce(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "failing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errViewFailed
		},
	}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	if code := execute(cmd); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr = %q, want nothing", errOut.String())
	}
}

func TestLogsCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "logs", "-c", cfg)
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	errIdx := strings.Index(out, "ERROR from /srv/validator/eval.py:42 [EVALUATION_TASK loop #3]")
	infoIdx := strings.Index(out, "INFO from /srv/validator/main.py:10 [MAIN]")
	if errIdx < 0 || infoIdx < 0 || errIdx > infoIdx {
		t.Errorf("want newest entry first, got:\n%s", out)
	}
	if !strings.Contains(out, `    "score": 0.5`) {
		t.Errorf("JSON message not pretty-printed:\n%s", out)
	}
	if !strings.Contains(out, "Displayed 2 logs out of 2 total logs") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestLogsCmd_Filters(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "logs", "-c", cfg, "--coroutine", "main", "--level", "INFO")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(out, "Displaying logs that occurred during coroutine(s) [MAIN]") {
		t.Errorf("missing filter description:\n%s", out)
	}
	if !strings.Contains(out, "Displayed 1 logs out of 2 total logs") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestLogsCmd_Options(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "logs", "-c", cfg, "--options")
	if err != nil {
		t.Fatalf("logs --options failed: %v", err)
	}
	if !strings.Contains(out, "Files:       eval.py, main.py") || !strings.Contains(out, "Loops:       3") {
		t.Errorf("unexpected options:\n%s", out)
	}
}

func TestLogsClearCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	if _, _, err := run(t, "logs", "clear", "-c", cfg); err == nil {
		t.Fatal("clear without --yes should fail")
	}
	out, _, err := run(t, "logs", "clear", "-c", cfg, "--yes")
	if err != nil {
		t.Fatalf("logs clear failed: %v", err)
	}
	if !strings.Contains(out, "Cleared existing logs") {
		t.Errorf("output = %q", out)
	}

	out, _, err = run(t, "logs", "-c", cfg)
	if err != nil {
		t.Fatalf("logs after clear failed: %v", err)
	}
	if !strings.Contains(out, "Displayed 0 logs out of 0 total logs") || !strings.Contains(out, "No logs yet") {
		t.Errorf("output after clear:\n%s", out)
	}
}

func TestLogsCmd_ConfigurationMissing(t *testing.T) {
	cfg := writeConfig(t, "")

	_, errOut, err := run(t, "logs", "-c", cfg)
	if err == nil {
		t.Fatal("expected failure without a subnet root")
	}
	if !strings.Contains(errOut, config.EnvSubnetRoot) {
		t.Errorf("stderr should name %s: %q", config.EnvSubnetRoot, errOut)
	}
}

func TestChallengesCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "challenges", "-c", cfg)
	if err != nil {
		t.Fatalf("challenges failed: %v", err)
	}
	for _, want := range []string{"ID", "cg-1", "cg-2", "add retries", "2 codegen challenges"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "mixed") {
		t.Errorf("regression challenge leaked into codegen list:\n%s", out)
	}

	if _, _, err := run(t, "challenges", "-c", cfg, "--type", "poetry"); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestChallengeCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "challenge", "rg-1", "-c", cfg, "-t", "regression")
	if err != nil {
		t.Fatalf("challenge failed: %v", err)
	}
	for _, want := range []string{"Challenge:   rg-1", "tests regressed", "  - core.py"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Dynamic checklist") {
		t.Errorf("regression detail should not show a checklist:\n%s", out)
	}

	out, _, err = run(t, "challenge", "nope", "-c", cfg)
	if err != nil {
		t.Fatalf("unknown id should not fail: %v", err)
	}
	if !strings.Contains(out, "Challenge nope not found") {
		t.Errorf("output = %q", out)
	}
}

func TestResponsesCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "responses", "-c", cfg, "--node", "1", "--show", "1")
	if err != nil {
		t.Fatalf("responses failed: %v", err)
	}
	for _, want := range []string{"ELAPSED", "0:01:30", "12.5", "Displayed 1 responses out of 3", "Response:     1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = run(t, "responses", "-c", cfg, "-t", "codegen", "--show", "1")
	if err != nil {
		t.Fatalf("typed responses failed: %v", err)
	}
	if !strings.Contains(out, "--- a/net.py") {
		t.Errorf("codegen detail should include the patch:\n%s", out)
	}
}

func TestPendingCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "pending", "-c", cfg)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	i3 := strings.Index(out, "\n3 ")
	i2 := strings.Index(out, "\n2 ")
	if i3 < 0 || i2 < 0 || i3 > i2 {
		t.Errorf("want response 3 before response 2:\n%s", out)
	}
	if !strings.Contains(out, "Displayed 2 responses out of 2") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestAvailabilityCmd(t *testing.T) {
	cfg := writeConfig(t, storetest.SubnetRoot(t))

	out, _, err := run(t, "availability", "-c", cfg, "--all")
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	for _, want := range []string{"Checks: 3 (2 available)", "15.0ms", "5.0ms", "timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAvailabilityCmd_MissingDatabase(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	_, errOut, err := run(t, "availability", "-c", cfg)
	if err == nil {
		t.Fatal("expected failure for a missing database")
	}
	if !strings.Contains(errOut, "Cave is currently searching for") || !strings.Contains(errOut, "validator.db") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 10, "abcdefghij"},
		{"abcdefghijkl", 8, "abcde..."},
		{"café-crème brûlée", 10, "café-cr..."},
		{"日本語のテキスト", 7, "日本..."},
	}

	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tt.in, tt.max, got)
		}
	}
}
