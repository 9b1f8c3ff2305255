package charger

import (
	"fmt"
	"math"
	"time"
)

// FormatElapsed renders the distance between from and now as a short display
// string: minutes under an hour, hours and minutes under a day, whole days
// under the date fallback.
func FormatElapsed(from, now time.Time) string {
	seconds := math.Floor(math.Abs(now.Sub(from).Seconds()))

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", int(minutes))
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", int(hours), int(minutes)-int(hours)*60)
	}

	days := hours / 24
	if days < 365 {
		return fmt.Sprintf("%dd", int(days))
	}

	return from.Format("2006-01-02")
}
