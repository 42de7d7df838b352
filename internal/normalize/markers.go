package normalize

import "strings"

// Markers are the substrings that reveal a failure the exit code hid.
// They are tied to FileVault's current message wording; matching is
// case-sensitive.
type Markers struct {
	Stdout []string `yaml:"stdout"` // any match in stdout marks a failure
	Stderr []string `yaml:"stderr"` // any match in stderr marks a failure
	Lines  []string `yaml:"lines"`  // stdout lines quoted in the error message
}

// DefaultMarkers match FileVault's failure output.
var DefaultMarkers = Markers{
	Stdout: []string{"✗ ", "Authentication failed", "Wrong password", "File corrupted", "Failed to", "Error:"},
	Stderr: []string{"error", "failed"},
	Lines:  []string{"✗ ", "Error", "failed"},
}

// Merge returns m with every empty list filled from DefaultMarkers.
func (m Markers) Merge() Markers {
	if len(m.Stdout) == 0 {
		m.Stdout = DefaultMarkers.Stdout
	}
	if len(m.Stderr) == 0 {
		m.Stderr = DefaultMarkers.Stderr
	}
	if len(m.Lines) == 0 {
		m.Lines = DefaultMarkers.Lines
	}
	return m
}

// Found reports whether stdout or stderr carries a failure marker.
func (m Markers) Found(stdout, stderr string) bool {
	return containsAny(stdout, m.Stdout) || containsAny(stderr, m.Stderr)
}

// ErrorLines returns the stdout lines that carry an error-line marker.
func (m Markers) ErrorLines(stdout string) []string {
	var out []string
	for _, line := range lines(stdout) {
		if containsAny(line, m.Lines) {
			out = append(out, line)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// lines splits on \n, trimming a trailing \r from each line and ignoring
// the empty remainder after a final newline.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
