package models

import (
	"bytes"
	"encoding/json"
	"slices"
)

// EvaluationTask is the coroutine tag that gives EvalLoopNum its meaning.
const EvaluationTask = "evaluation_task"

// LogEntry is one record of the validator's JSON log file. LevelName still
// carries the ANSI colour codes the producer wrapped it in.
type LogEntry struct {
	Timestamp        string   `json:"timestamp"`
	LevelName        string   `json:"levelname"`
	Pathname         string   `json:"pathname"`
	Lineno           int      `json:"lineno"`
	Filename         string   `json:"filename"`
	Message          string   `json:"message"`
	ActiveCoroutines []string `json:"active_coroutines"`
	EvalLoopNum      int      `json:"eval_loop_num"`
}

// HasCoroutine reports whether tag was active when the entry was emitted.
func (e LogEntry) HasCoroutine(tag string) bool {
	return slices.Contains(e.ActiveCoroutines, tag)
}

// InEvaluationLoop reports whether EvalLoopNum is meaningful for this entry.
func (e LogEntry) InEvaluationLoop() bool {
	return e.HasCoroutine(EvaluationTask)
}

// MessageJSON returns the message re-indented when it is itself a JSON
// object or array.
func (e LogEntry) MessageJSON() (string, bool) {
	trimmed := bytes.TrimSpace([]byte(e.Message))
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}
