package convert

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal condition met during conversion
type Warning struct {
	Source  string
	Page    int
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s: page %d: %s", w.Source, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Source, w.Message)
}

// FormatWarnings joins warnings into one message per line
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
