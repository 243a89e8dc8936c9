// Package rocdate converts Republic-of-China era dates (民國年) used by the
// TWSE/TPEx open APIs into ISO 8601 strings. ROC year + 1911 = Gregorian year.
package rocdate

import (
	"strconv"
	"strings"
)

// ToISO converts a ROC date string to "YYYY-MM-DD".
// Accepts the 7-digit form ("1150129") and the slash form ("115/01/29").
// Empty or whitespace input returns "", the caller's "unknown date"
// sentinel, not an error. Anything unparseable also degrades to "".
func ToISO(rocDate string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(rocDate), "/", "")
	if cleaned == "" {
		return ""
	}
	if len(cleaned) != 7 {
		return ""
	}

	year, err := strconv.Atoi(cleaned[:3])
	if err != nil || year < 1 {
		return ""
	}
	month := cleaned[3:5]
	day := cleaned[5:7]
	if !isDigits(month) || !isDigits(day) {
		return ""
	}

	return strconv.Itoa(year+1911) + "-" + month + "-" + day
}

// ParsePeriod splits a disposal period such as "115/01/29～115/02/11" into
// start and end ISO dates. Both the full-width (～) and half-width (~) tilde
// are accepted. Anything that does not split into exactly two parts yields
// two empty strings; the function never fails.
func ParsePeriod(period string) (startDate, endDate string) {
	normalized := strings.ReplaceAll(period, "～", "~")
	parts := strings.Split(normalized, "~")
	if len(parts) != 2 {
		return "", ""
	}
	return ToISO(parts[0]), ToISO(parts[1])
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
