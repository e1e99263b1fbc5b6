package printer

import (
	"fmt"
	"time"
)

// TimeAgo renders how long ago a document was created, relative to the
// current UTC time. Ages are rounded down to the largest unit between
// seconds and days. Future timestamps render as "in the future (UTC)".
func TimeAgo(t time.Time) string {
	elapsed := time.Now().UTC().Sub(t.UTC())
	if elapsed < 0 {
		return "in the future (UTC)"
	}

	var amount int
	var unit string
	switch {
	case elapsed < time.Minute:
		amount, unit = int(elapsed.Seconds()), "second"
	case elapsed < time.Hour:
		amount, unit = int(elapsed.Minutes()), "minute"
	case elapsed < 24*time.Hour:
		amount, unit = int(elapsed.Hours()), "hour"
	default:
		amount, unit = int(elapsed.Hours())/24, "day"
	}

	if amount == 1 {
		return fmt.Sprintf("1 %s ago (UTC)", unit)
	}
	return fmt.Sprintf("%d %ss ago (UTC)", amount, unit)
}

// FormatTimestamp renders an absolute creation time in UTC, e.g.
// "2026-08-30 10:00:00 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
