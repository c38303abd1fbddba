package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	NowFunc = time.Now // mockable

	ErrInvalidClock = errors.New("time must be of the form H:MM")
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseClock converts an "H:MM" (or "HH:MM") wall-clock string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(CleanString(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 || parts[0] == "" || len(parts[0]) > 2 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock: 545 -> "9:05".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// Round rounds f to the given number of decimal places, halves away from zero.
func Round(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}
