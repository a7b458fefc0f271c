package compliance

import (
	"fmt"

	"labor-contract/types"
)

const minutesPerDay = 24 * 60

// DurationMinutes is the elapsed time from start to end. An end earlier than
// the start falls on the next day.
func DurationMinutes(start, end *types.TimeOfDay) int {
	if start == nil || end == nil {
		return 0
	}
	d := end.Minutes() - start.Minutes()
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// FormatDuration renders minutes as "H시간 M분".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0시간"
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d시간", h)
	}
	return fmt.Sprintf("%d시간 %d분", h, m)
}

// ScheduleMinutes returns the gross stay, the break and the net working
// minutes of one working day.
func ScheduleMinutes(ws types.WorkSchedule) (stay, brk, net int) {
	stay = DurationMinutes(ws.StartTime, ws.EndTime)
	brk = DurationMinutes(ws.BreakStartTime, ws.BreakEndTime)
	net = stay - brk
	if net < 0 {
		net = 0
	}
	return stay, brk, net
}

// WeeklyMinutes is the net daily time over the number of working days.
func WeeklyMinutes(netDaily, days int) int {
	return netDaily * days
}
