package timesheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// ParseHours converts a decimal-hours string as typed into a day field to
// minutes. A comma decimal separator is accepted. Empty, malformed, and
// negative input all collapse to zero minutes rather than an error.
func ParseHours(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	text = strings.ReplaceAll(text, ",", ".")
	hours, err := strconv.ParseFloat(text, 64)
	if err != nil || hours <= 0 {
		return 0
	}
	return int(math.Round(hours * 60))
}

// FormatMinutes renders minutes as decimal hours for prefilling a day field.
// Zero renders as an empty string so an unlogged day shows a blank input.
// Values round to a tenth of an hour, so 95 minutes displays as "1.6".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	tenths := int(math.Round(float64(minutes) / 6))
	if tenths%10 == 0 {
		return strconv.Itoa(tenths / 10)
	}
	return strconv.Itoa(tenths/10) + "." + strconv.Itoa(tenths%10)
}

// ParseISODuration converts a Clockify duration token such as "PT7H30M" to
// minutes. Missing components default to zero, seconds are ignored, and
// unparseable input yields zero.
func ParseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return hours*60 + mins
}
