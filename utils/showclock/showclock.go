// Package showclock reconstructs absolute showtime instants from the
// fragmentary time text venues publish ("7:30PM", "2 PM", "_4:15pm").
package showclock

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timePattern tolerates the variants seen in venue listings: optional
// minutes, optional whitespace before the meridiem, any casing. Stray
// leading characters (underscore artifacts from the upstream CMS) are
// ignored because the pattern is unanchored.
var timePattern = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{0,2})\s*(AM|PM)`)

// Resolve combines a wall-clock time fragment with the reference date's
// year, month and day in the venue's timezone and returns the absolute
// UTC instant. The second return is false when the text contains no
// recognizable time.
//
// The composed time is always interpreted in loc and converted to UTC;
// the host process's zone never participates.
func Resolve(ref time.Time, text string, loc *time.Location) (time.Time, bool) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, false
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return time.Time{}, false
		}
	}

	if strings.EqualFold(m[3], "PM") {
		if hour != 12 {
			hour += 12
		}
	} else if hour == 12 {
		hour = 0
	}

	day := ref.In(loc)
	resolved := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	return resolved.UTC(), true
}
