package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModeUnsupported is returned when a reconstruction mode has no
// implementation.
var ErrModeUnsupported = errors.New("reconstruction mode not supported")

// Mode selects how page text is rebuilt
type Mode int

const (
	// ModeFlow rebuilds flowing paragraphs
	ModeFlow Mode = iota
	// ModeExact would preserve absolute positioning. It has no implementation.
	ModeExact
)

// String returns a string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeFlow:
		return "flow"
	case ModeExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flow":
		return ModeFlow, nil
	case "exact":
		return ModeExact, nil
	default:
		return ModeFlow, fmt.Errorf("unknown reconstruction mode %q", s)
	}
}

// Supported returns nil if the mode can be reconstructed.
func (m Mode) Supported() error {
	if m == ModeFlow {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrModeUnsupported, m)
}
