package errors

import (
	"fmt"
	"strings"
)

// LineOf returns the 1-based line of the first occurrence of needle in src.
// When needle does not occur, the first line is reported.
func LineOf(src, needle string) int {
	idx := strings.Index(src, needle)
	if idx < 0 {
		return 1
	}
	return strings.Count(src[:idx], "\n") + 1
}

// ExtractContext returns the lines of src surrounding the given 1-based line,
// prefixed with line numbers and an arrow marking the line itself.
func ExtractContext(src string, line, contextLines int) string {
	if line <= 0 || src == "" {
		return ""
	}

	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")

	errorLine := line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))
	}

	return sb.String()
}

// WithContext attaches the source lines around the error's location.
func WithContext(err *Error, src string, contextLines int) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(src, err.Location.Line, contextLines)
	}
	return err
}
