// Package storetest builds validator databases and log files for tests.
package storetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zulandar/cave/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Schema mirrors the tables the validator process creates.
var Schema = []string{
	`CREATE TABLE challenges (
		challenge_id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE codegen_challenges (
		challenge_id TEXT PRIMARY KEY,
		problem_statement TEXT,
		dynamic_checklist TEXT,
		repository_url TEXT,
		commit_hash TEXT,
		context_file_paths TEXT
	)`,
	`CREATE TABLE regression_challenges (
		challenge_id TEXT PRIMARY KEY,
		problem_statement TEXT,
		repository_url TEXT,
		commit_hash TEXT,
		context_file_paths TEXT
	)`,
	`CREATE TABLE responses (
		response_id INTEGER PRIMARY KEY AUTOINCREMENT,
		challenge_id TEXT,
		miner_hotkey TEXT,
		node_id INTEGER,
		processing_time REAL,
		received_at TEXT,
		completed_at TEXT,
		evaluated BOOLEAN DEFAULT 0,
		score REAL,
		evaluated_at TEXT,
		response_patch TEXT
	)`,
	`CREATE TABLE codegen_responses (
		response_id INTEGER PRIMARY KEY,
		response_patch TEXT
	)`,
	`CREATE TABLE regression_responses (
		response_id INTEGER PRIMARY KEY,
		response_patch TEXT
	)`,
	`CREATE TABLE availability_checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		node_id INTEGER,
		hotkey TEXT,
		checked_at TIMESTAMP,
		is_available BOOLEAN,
		response_time_ms REAL,
		error TEXT
	)`,
}

// ValidatorDB creates a validator.db under a temp dir with the validator
// schema plus stmts applied, and returns its path.
func ValidatorDB(t *testing.T, stmts ...string) string {
	t.Helper()
	all := append(append([]string{}, Schema...), stmts...)
	return DBAt(t, filepath.Join(t.TempDir(), "validator.db"), all...)
}

// DBAt creates a database at path, runs stmts, and closes it.
func DBAt(t *testing.T, path string, stmts ...string) string {
	t.Helper()
	writer, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close(writer)

	for _, s := range stmts {
		if err := writer.Exec(s).Error; err != nil {
			t.Fatalf("fixture exec %q: %v", s, err)
		}
	}
	return path
}

// Seed is a small but complete validator snapshot.
var Seed = []string{
	`INSERT INTO challenges VALUES ('cg-1', 'codegen', '2025-01-01T10:00:00')`,
	`INSERT INTO challenges VALUES ('cg-2', 'codegen', '2025-01-01T11:00:00')`,
	`INSERT INTO challenges VALUES ('rg-1', 'regression', '2025-01-01T12:00:00')`,
	`INSERT INTO codegen_challenges VALUES ('cg-1', 'add retries', '["retries added","tests pass"]', 'https://github.com/org/a', 'abc123', '["net.py","retry.py"]')`,
	`INSERT INTO codegen_challenges VALUES ('cg-2', 'fix typo', '[]', 'https://github.com/org/b', NULL, '["README.md"]')`,
	`INSERT INTO regression_challenges VALUES ('rg-1', 'tests regressed', 'https://github.com/org/c', 'def456', '["core.py"]')`,
	// A codegen row whose common record says regression must not leak in.
	`INSERT INTO challenges VALUES ('mixed', 'regression', '2025-01-01T13:00:00')`,
	`INSERT INTO codegen_challenges VALUES ('mixed', 'wrong table', '[]', 'x', NULL, '[]')`,

	`INSERT INTO responses (response_id, challenge_id, miner_hotkey, node_id, processing_time, received_at, completed_at, evaluated, score, evaluated_at, response_patch)
		VALUES (1, 'cg-1', 'hk-a', 1, 12.5, '2025-01-02T10:00:00', '2025-01-02T10:01:30.700000', 1, 0.9, '2025-01-02T11:00:00', 'base patch 1')`,
	`INSERT INTO responses (response_id, challenge_id, miner_hotkey, node_id, processing_time, received_at, completed_at, evaluated)
		VALUES (2, 'rg-1', 'hk-b', 2, 3.0, '2025-01-02T12:00:00', '2025-01-02T12:00:05', 0)`,
	`INSERT INTO responses (response_id, challenge_id, miner_hotkey, node_id, received_at, evaluated)
		VALUES (3, 'cg-2', 'hk-a', NULL, '2025-01-02T13:00:00', 0)`,
	`INSERT INTO codegen_responses VALUES (1, '--- a/net.py')`,
	`INSERT INTO regression_responses VALUES (2, '--- a/core.py')`,

	`INSERT INTO availability_checks (node_id, hotkey, checked_at, is_available, response_time_ms, error) VALUES (1, 'hk-a', '2025-01-03T00:00:00', 1, 10, NULL)`,
	`INSERT INTO availability_checks (node_id, hotkey, checked_at, is_available, response_time_ms, error) VALUES (1, 'hk-a', '2025-01-03T00:05:00', 1, 20, NULL)`,
	`INSERT INTO availability_checks (node_id, hotkey, checked_at, is_available, response_time_ms, error) VALUES (2, 'hk-b', '2025-01-03T00:00:00', 0, 5, 'timeout')`,
}

// SampleLogs is a two-entry log file as the validator writes it.
const SampleLogs = `[
  {"timestamp": "2025-01-01 10:00:00", "levelname": "\u001b[0;32;1mINFO\u001b[0m", "pathname": "/srv/validator/main.py",
   "lineno": 10, "filename": "main.py", "message": "started", "active_coroutines": ["main"], "eval_loop_num": 0},
  {"timestamp": "2025-01-01 10:00:05", "levelname": "\u001b[0;31;1mERROR\u001b[0m", "pathname": "/srv/validator/eval.py",
   "lineno": 42, "filename": "eval.py", "message": "{\"score\": 0.5}", "active_coroutines": ["evaluation_task"], "eval_loop_num": 3}
]`

// LogFile writes content to dir/logging/logs.json and returns its path.
func LogFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "logging", "logs.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// SubnetRoot lays out a subnet checkout under a temp dir with a seeded
// validator.db and the sample log file, and returns the root.
func SubnetRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	all := append(append([]string{}, Schema...), Seed...)
	DBAt(t, filepath.Join(root, "validator.db"), all...)
	LogFile(t, root, SampleLogs)
	return root
}
