package service

import (
	"fmt"
	"time"
)

// reportWeekSpan is the offset from a report week's start date to its end.
// The scouting calendar anchors report weeks on Tuesday, so start + 5 days
// lands on Sunday. The supplied start date's weekday is not validated; the
// span is a pure constant.
const reportWeekSpan = 5

// WeekWindow describes a calendar window for performance queries.
type WeekWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// currentScoutingWeek returns the Sunday–Saturday window containing now.
func currentScoutingWeek(now time.Time) WeekWindow {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 6)
	return WeekWindow{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("Week of %s", start.Format("Jan 2, 2006")),
	}
}

// reportWeekEnd returns the last day of the report week starting at start.
func reportWeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, reportWeekSpan)
}
