package clock

import (
	"fmt"
	"time"
)

// Format renders t as "HH:MM AM/PM MM/DD/YYYY" in t's location.
// Hour 0 renders as 12 AM and hours 1 through 12 render as AM, so noon
// shows as "12:00 AM".
func Format(t time.Time) string {
	hour := t.Hour()
	ampm := "AM"
	if hour > 12 {
		ampm = "PM"
		hour -= 12
	} else if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%02d %s %02d/%02d/%d", hour, t.Minute(), ampm, int(t.Month()), t.Day(), t.Year())
}
