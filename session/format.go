package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTime renders seconds as m:ss. Unknown, negative or non-finite values render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "0:00"
	}

	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatRate renders a playback rate the way the rate control shows it, e.g. 1.0x or 1.25x.
func FormatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "x"
}
