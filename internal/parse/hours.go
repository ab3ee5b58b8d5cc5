package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hoursRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(?:-|–|to|às|as)\s*(\d{1,2})(?::(\d{2}))?`)

// DayWindow is the span of a day during which a laundry accepts bookings,
// expressed in minutes from midnight. The window is half-open.
type DayWindow struct {
	OpenMinute  int
	CloseMinute int
}

// ParseHours extracts a bookable day window from a laundry's free-text
// opening hours, e.g. "08:00-22:00", "8-22", "8h às 20h". Only the first
// range found is used; owners describing per-day schedules get the first
// listed range.
func ParseHours(raw string) (DayWindow, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.ReplaceAll(s, "h", "")

	m := hoursRe.FindStringSubmatch(s)
	if m == nil {
		return DayWindow{}, fmt.Errorf("unable to parse opening hours: %q", raw)
	}

	openH, _ := strconv.Atoi(m[1])
	closeH, _ := strconv.Atoi(m[3])
	openM, closeM := 0, 0
	if m[2] != "" {
		openM, _ = strconv.Atoi(m[2])
	}
	if m[4] != "" {
		closeM, _ = strconv.Atoi(m[4])
	}

	w := DayWindow{
		OpenMinute:  openH*60 + openM,
		CloseMinute: closeH*60 + closeM,
	}
	if openH > 24 || closeH > 24 || openM > 59 || closeM > 59 || w.OpenMinute >= w.CloseMinute {
		return DayWindow{}, fmt.Errorf("implausible opening hours: %q", raw)
	}
	return w, nil
}
