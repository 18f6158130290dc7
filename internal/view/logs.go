package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zulandar/cave/internal/filter"
	"github.com/zulandar/cave/internal/models"
	"github.com/zulandar/cave/internal/store"
)

// LogLine is one log entry prepared for display.
type LogLine struct {
	Timestamp   string         `json:"timestamp"`
	Level       string         `json:"level"`
	Color       store.ColorTag `json:"color"`
	Location    string         `json:"location"`
	Coroutines  string         `json:"coroutines,omitempty"`
	Message     string         `json:"message"`
	MessageJSON string         `json:"message_json,omitempty"`
}

// LogsView is the log page: matching entries newest first.
type LogsView struct {
	Notice
	Lines     []LogLine           `json:"logs"`
	Displayed int                 `json:"displayed"`
	Total     int                 `json:"total"`
	Summary   string              `json:"summary"`
	Filters   []string            `json:"filters"`
	Selection filter.LogSelection `json:"selection"`
	Options   filter.LogOptions   `json:"options"`
}

// Logs loads the log file and applies sel. The engine keeps file order; the
// reversal to newest first happens here.
func (l *Loader) Logs(ctx context.Context, sel filter.LogSelection) LogsView {
	_, done := l.begin(ctx, "logs")
	v := LogsView{Selection: sel, Filters: orEmpty(sel.Describe()), Lines: []LogLine{}}
	defer func() { done(&v.Notice, v.Displayed) }()

	if l.cfgErr != nil {
		v.Notice = l.failure("logs", l.cfgErr)
		return v
	}
	entries, err := l.logs.Load()
	if err != nil {
		v.Notice = l.failure("logs", err)
		return v
	}

	matched := filter.Logs(entries, sel)
	v.Total = len(entries)
	v.Displayed = len(matched)
	v.Options = filter.DiscoverLogOptions(entries)
	v.Summary = fmt.Sprintf("Displayed %d logs out of %d total logs", v.Displayed, v.Total)
	v.Lines = make([]LogLine, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		v.Lines = append(v.Lines, NewLogLine(matched[i]))
	}

	switch {
	case v.Total == 0:
		v.Notice = empty("No logs yet. Logs appear once the validator starts writing them")
	case v.Displayed == 0:
		v.Notice = empty("No logs matched. Please update your filters")
	default:
		v.Notice = ok()
	}
	return v
}

// NewLogLine formats e for display.
func NewLogLine(e models.LogEntry) LogLine {
	level := store.LevelName(e)
	line := LogLine{
		Timestamp:  e.Timestamp,
		Level:      level,
		Color:      store.LevelColor(level),
		Location:   e.Pathname + ":" + strconv.Itoa(e.Lineno),
		Coroutines: CoroutineHeader(e),
		Message:    e.Message,
	}
	if pretty, ok := e.MessageJSON(); ok {
		line.MessageJSON = pretty
	}
	return line
}

// CoroutineHeader renders the active coroutines as "[MAIN] [EVALUATION_TASK
// loop #3]".
func CoroutineHeader(e models.LogEntry) string {
	tags := make([]string, 0, len(e.ActiveCoroutines))
	for _, c := range e.ActiveCoroutines {
		if c == models.EvaluationTask {
			tags = append(tags, fmt.Sprintf("[%s loop #%d]", strings.ToUpper(c), e.EvalLoopNum))
			continue
		}
		tags = append(tags, "["+strings.ToUpper(c)+"]")
	}
	return strings.Join(tags, " ")
}

// ClearLogs empties the log file.
func (l *Loader) ClearLogs(ctx context.Context) Notice {
	_, done := l.begin(ctx, "logs_clear")
	n := ok()
	defer func() { done(&n, 0) }()

	if l.cfgErr != nil {
		n = l.failure("logs_clear", l.cfgErr)
		return n
	}
	if err := l.logs.Clear(); err != nil {
		n = l.failure("logs_clear", err)
		return n
	}
	n.Message = "Cleared existing logs"
	return n
}
