package cmd

import (
	"fmt"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

const (
	schedulePrimary   = "primary"
	scheduleAlternate = "alternate"
	switchOn          = "on"
	switchOff         = "off"
)

// parseClock reads a 24-hour HH:MM time of day.
func parseClock(value string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, domain.InvalidField("time", "want HH:MM, got %q", value)
	}

	return parsed.Hour(), parsed.Minute(), nil
}

// optionalChoice maps an optional two-way argument to a flag; no argument means nil.
func optionalChoice(args []string, yes, no string) (*bool, error) {
	if len(args) == 0 {
		return nil, nil //nolint:nilnil // Absent argument means "show only".
	}

	var value bool

	switch args[0] {
	case yes:
		value = true
	case no:
		value = false
	default:
		return nil, fmt.Errorf("unexpected argument %q, want %s or %s", args[0], yes, no)
	}

	return &value, nil
}
