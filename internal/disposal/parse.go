// Package disposal turns raw exchange notice records into the canonical
// attention/disposal lists and computes disposal-threshold prices.
package disposal

import (
	"regexp"
	"strconv"
	"strings"
)

// Matching intervals in minutes. A first disposal slots trading into 5-minute
// calls; a repeat offense within the window escalates to 20 minutes.
const (
	IntervalFirst  = 5
	IntervalSecond = 20
)

// ParseInterval extracts the matching interval from the free-text disposal
// measures. This is a lossy heuristic over regulatory language: anything
// without an explicit 20-minute phrase is treated as first-tier (5 minutes).
func ParseInterval(measures string) int {
	if strings.Contains(measures, "二十分鐘") || strings.Contains(measures, "20分鐘") {
		return IntervalSecond
	}
	return IntervalFirst
}

var attentionCountRe = regexp.MustCompile(`第(\d+)次`)

// ParseAttentionCount extracts the cumulative trigger count from the
// "第N次" phrase. Counts of 2 or more clamp to 2 (the high-risk ceiling);
// no match or N=1 yields 1. Never returns anything outside {1, 2}.
func ParseAttentionCount(situation string) int {
	m := attentionCountRe.FindStringSubmatch(situation)
	if m == nil {
		return 1
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 2 {
		return 1
	}
	return 2
}
