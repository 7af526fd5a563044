// Package format renders prices and clock times for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Price formats cents as dollars, e.g. 1250 -> "$12.50".
func Price(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Time converts "HH:MM" (seconds are ignored) to a 12-hour clock, e.g.
// "17:30" -> "5:30 PM". Empty or malformed input yields "".
func Time(t string) string {
	if t == "" {
		return ""
	}
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return ""
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "PM"
	if hour < 12 {
		suffix = "AM"
	}
	return fmt.Sprintf("%d:%s %s", h, parts[1], suffix)
}
