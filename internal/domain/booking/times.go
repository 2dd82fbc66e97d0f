package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SlotTimes are the canned appointment times offered by default.
var SlotTimes = []string{"09:00 AM", "10:00 AM", "02:00 PM", "04:00 PM"}

// DefaultTime is applied at confirmation if no time was selected. The
// slot-selection gate makes this unreachable in practice; it exists as a
// last-resort fallback.
const DefaultTime = "10:00 AM"

var ErrInvalidTime = errors.New("time must be in 24-hour HH:MM format")

// IsSlotTime reports whether label is one of the canned slots.
func IsSlotTime(label string) bool {
	for _, t := range SlotTimes {
		if t == label {
			return true
		}
	}
	return false
}

// NormalizeManualTime converts 24-hour "HH:MM" input to a 12-hour label
// with AM/PM suffix: hours 0 and 12 map to 12, 13-23 map to hour-12.
// Minutes are kept verbatim.
func NormalizeManualTime(in string) (string, error) {
	parts := strings.Split(in, ":")
	if len(parts) != 2 {
		return "", ErrInvalidTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", ErrInvalidTime
	}
	minutes := parts[1]
	if len(minutes) != 2 {
		return "", ErrInvalidTime
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return "", ErrInvalidTime
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, minutes, suffix), nil
}
