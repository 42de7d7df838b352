package vault

import (
	"strings"

	"github.com/deixis/vaultbridge/internal/normalize"
)

// Level classifies a line of FileVault output for a log panel.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// LogEntry is one non-blank line of output.
type LogEntry struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// LogLines splits a result's stdout into log entries, skipping blank lines.
// Lines containing one of m.Lines are errors; an empty m uses the defaults.
func LogLines(res normalize.CommandResult, m normalize.Markers) []LogEntry {
	m = m.Merge()
	var out []LogEntry
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, LogEntry{Level: classify(line, m.Lines), Message: line})
	}
	return out
}

func classify(line string, errorMarkers []string) Level {
	for _, m := range errorMarkers {
		if strings.Contains(line, m) {
			return LevelError
		}
	}
	switch {
	case strings.Contains(line, "✓"):
		return LevelSuccess
	case strings.Contains(line, "⚠"), strings.HasPrefix(strings.TrimSpace(line), "Warning"):
		return LevelWarning
	default:
		return LevelInfo
	}
}
