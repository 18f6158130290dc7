package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/zulandar/cave/internal/store"
	"golang.org/x/term"
)

var levelColors = map[store.ColorTag]lipgloss.Color{
	store.ColorCyan:   lipgloss.Color("6"),
	store.ColorGreen:  lipgloss.Color("2"),
	store.ColorYellow: lipgloss.Color("3"),
	store.ColorRed:    lipgloss.Color("1"),
	store.ColorWhite:  lipgloss.Color("7"),
}

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// painter colours text only when writing to a terminal.
type painter struct {
	enabled bool
}

func newPainter(out io.Writer) painter {
	f, ok := out.(*os.File)
	return painter{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

func (p painter) level(name string, tag store.ColorTag) string {
	if !p.enabled {
		return name
	}
	return lipgloss.NewStyle().Bold(true).Foreground(levelColors[tag]).Render(name)
}

func (p painter) dim(s string) string {
	if !p.enabled {
		return s
	}
	return dimStyle.Render(s)
}

func (p painter) accent(s string) string {
	if !p.enabled || s == "" {
		return s
	}
	return accentStyle.Render(s)
}

// truncate cuts s to maxLen terminal cells, ending in "..." when shortened.
func truncate(s string, maxLen int) string {
	return ansi.Truncate(s, maxLen, "...")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatOptInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptString(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func formatMs(ms float64) string {
	return fmt.Sprintf("%.1fms", ms)
}
