package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zulandar/cave/internal/models"
	"github.com/zulandar/cave/internal/store"
)

// LogSelection is the current filter choice for the log view. Empty fields
// are unset. LoopNum 0 is unset; the producer never assigns loop number 0.
type LogSelection struct {
	File       string   `json:"file,omitempty" form:"file"`
	Level      string   `json:"level,omitempty" form:"level"`
	Coroutines []string `json:"coroutines,omitempty" form:"coroutine"`
	LoopNum    int      `json:"loop_num,omitempty" form:"loop_num"`
}

// IsZero reports whether no dimension is set.
func (s LogSelection) IsZero() bool {
	return s.File == "" && s.Level == "" && len(s.Coroutines) == 0 && s.LoopNum == 0
}

// Predicates returns one predicate per set dimension.
func (s LogSelection) Predicates() []Predicate[models.LogEntry] {
	var preds []Predicate[models.LogEntry]
	if s.File != "" {
		file := s.File
		preds = append(preds, func(e models.LogEntry) bool { return e.Filename == file })
	}
	if s.Level != "" {
		level := s.Level
		preds = append(preds, func(e models.LogEntry) bool { return store.LevelName(e) == level })
	}
	if len(s.Coroutines) > 0 {
		tags := slices.Clone(s.Coroutines)
		preds = append(preds, func(e models.LogEntry) bool {
			return slices.ContainsFunc(tags, e.HasCoroutine)
		})
	}
	if s.LoopNum != 0 {
		loop := s.LoopNum
		preds = append(preds, func(e models.LogEntry) bool {
			return e.EvalLoopNum == loop && e.InEvaluationLoop()
		})
	}
	return preds
}

// Logs applies the selection to entries.
func Logs(entries []models.LogEntry, s LogSelection) []models.LogEntry {
	return Apply(entries, s.Predicates()...)
}

// Describe returns one line per set dimension, in a fixed order.
func (s LogSelection) Describe() []string {
	var lines []string
	if s.File != "" {
		lines = append(lines, fmt.Sprintf("Displaying logs from `%s`", s.File))
	}
	if s.Level != "" {
		lines = append(lines, "Displaying logs with level "+s.Level)
	}
	if len(s.Coroutines) > 0 {
		tags := make([]string, len(s.Coroutines))
		for i, c := range s.Coroutines {
			tags[i] = "[" + strings.ToUpper(c) + "]"
		}
		lines = append(lines, "Displaying logs that occurred during coroutine(s) "+strings.Join(tags, " or "))
	}
	if s.LoopNum != 0 {
		lines = append(lines, fmt.Sprintf("Displaying logs that occurred during loop number %d", s.LoopNum))
	}
	return lines
}

// LogOptions are the distinct values each log dimension can take.
type LogOptions struct {
	Files      []string `json:"files"`
	Levels     []string `json:"levels"`
	Coroutines []string `json:"coroutines"`
	LoopNums   []int    `json:"loop_nums"`
}

// DiscoverLogOptions collects sorted distinct options from entries. Loop
// number 0 is never offered.
func DiscoverLogOptions(entries []models.LogEntry) LogOptions {
	files := map[string]struct{}{}
	levels := map[string]struct{}{}
	coroutines := map[string]struct{}{}
	loops := map[int]struct{}{}
	for _, e := range entries {
		files[e.Filename] = struct{}{}
		levels[store.LevelName(e)] = struct{}{}
		for _, c := range e.ActiveCoroutines {
			coroutines[c] = struct{}{}
		}
		if e.EvalLoopNum != 0 {
			loops[e.EvalLoopNum] = struct{}{}
		}
	}
	return LogOptions{
		Files:      sortedKeys(files),
		Levels:     sortedKeys(levels),
		Coroutines: sortedKeys(coroutines),
		LoopNums:   sortedKeys(loops),
	}
}

func sortedKeys[K interface{ ~int | ~int64 | ~string }](m map[K]struct{}) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
