package utils

import (
	"fmt"
	"math"
)

// HMS formats a duration in seconds as zero-padded "HH:MM:SS". Negative
// inputs clamp to zero; sub-second precision is rounded away.
func HMS(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(math.Round(seconds))
	hh := s / 3600
	mm := (s % 3600) / 60
	ss := s % 60
	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
}
