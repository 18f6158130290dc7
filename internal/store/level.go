package store

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/zulandar/cave/internal/models"
)

// ColorTag names the colour a log level is displayed in.
type ColorTag string

const (
	ColorCyan   ColorTag = "cyan"
	ColorGreen  ColorTag = "green"
	ColorYellow ColorTag = "yellow"
	ColorRed    ColorTag = "red"
	ColorWhite  ColorTag = "white"
)

// LevelName returns the entry's level with the producer's ANSI colour
// escapes removed, e.g. "\x1b[0;32;1mINFO\x1b[0m" becomes "INFO".
func LevelName(entry models.LogEntry) string {
	return strings.TrimSpace(ansi.Strip(entry.LevelName))
}

// LevelColor maps a canonical level name to its display colour. Unknown
// levels are white.
func LevelColor(levelName string) ColorTag {
	switch levelName {
	case "DEBUG":
		return ColorCyan
	case "INFO":
		return ColorGreen
	case "WARNING":
		return ColorYellow
	case "ERROR", "CRITICAL":
		return ColorRed
	default:
		return ColorWhite
	}
}
