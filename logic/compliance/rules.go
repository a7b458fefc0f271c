package compliance

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"labor-contract/types"
)

// Break minimums by net daily working time (근로기준법 제54조).
const (
	breakTier8H    = 480
	breakMinimum8H = 60
	breakTier4H    = 240
	breakMinimum4H = 30
)

const (
	fieldBreakStart  = "workSchedule.breakStartTime"
	fieldWorkEnd     = "workSchedule.endTime"
	fieldHoliday     = "workSchedule.weeklyHoliday"
	fieldWageAmount  = "wage.amount"
	fieldProbationPc = "wage.probationWagePercent"
	fieldProbationTo = "wage.probationEndDate"
)

// CheckBreakTime applies the tightest break tier that matches the net time.
func CheckBreakTime(stay, brk int) *Violation {
	net := stay - brk
	switch {
	case net >= breakTier8H:
		if brk < breakMinimum8H {
			return &Violation{
				Step:    types.StepWorkTime,
				Level:   LevelError,
				Code:    CodeBreakInsufficient8H,
				Field:   fieldBreakStart,
				Message: "8시간 이상 근무 시 1시간 이상의 휴게시간이 필요합니다.",
			}
		}
	case net >= breakTier4H:
		if brk < breakMinimum4H {
			return &Violation{
				Step:    types.StepWorkTime,
				Level:   LevelError,
				Code:    CodeBreakInsufficient4H,
				Field:   fieldBreakStart,
				Message: "4시간 이상 근무 시 30분 이상의 휴게시간이 필요합니다.",
			}
		}
	}
	return nil
}

// CheckBreakWindow requires the break to sit inside the shift. Overnight
// shifts and breaks after midnight are placed on the next day.
func CheckBreakWindow(ws types.WorkSchedule) *Violation {
	if ws.StartTime == nil || ws.EndTime == nil || ws.BreakStartTime == nil || ws.BreakEndTime == nil {
		return nil
	}
	stay := DurationMinutes(ws.StartTime, ws.EndTime)
	brk := DurationMinutes(ws.BreakStartTime, ws.BreakEndTime)
	if stay == 0 || brk == 0 {
		return nil
	}

	shiftStart := ws.StartTime.Minutes()
	shiftEnd := shiftStart + stay
	breakStart := ws.BreakStartTime.Minutes()
	if breakStart < shiftStart {
		breakStart += minutesPerDay
	}
	if breakStart+brk <= shiftEnd {
		return nil
	}
	return &Violation{
		Step:    types.StepWorkTime,
		Level:   LevelError,
		Code:    CodeBreakOutsideShift,
		Field:   fieldBreakStart,
		Message: fmt.Sprintf("휴게시간은 근무시간(%s~%s) 안에 있어야 합니다.", ws.StartTime, ws.EndTime),
	}
}

// CheckMinorCap limits the net daily time of workers under 18.
func (p Policy) CheckMinorCap(ct types.ContractType, net int) *Violation {
	if ct != types.ContractMinor || net <= p.MinorDailyCapMinutes {
		return nil
	}
	return &Violation{
		Step:  types.StepWorkTime,
		Level: LevelError,
		Code:  CodeMinorDailyCapExceeded,
		Field: fieldWorkEnd,
		Message: fmt.Sprintf("연소근로자의 1일 근로시간은 %s을 초과할 수 없습니다. (현재 %s)",
			FormatDuration(p.MinorDailyCapMinutes), FormatDuration(net)),
	}
}

// HolidayRequired reports whether the weekly time earns a paid weekly holiday.
func (p Policy) HolidayRequired(weekly int) bool {
	return weekly >= p.WeeklyHolidayThresholdMinutes
}

// CheckWeeklyHoliday flags a missing mandatory holiday as blocking. A holiday
// that is also a working day is only advisory.
func (p Policy) CheckWeeklyHoliday(ws types.WorkSchedule, net int) []Violation {
	var out []Violation
	weekly := WeeklyMinutes(net, len(ws.WorkingDays))
	if p.HolidayRequired(weekly) && ws.WeeklyHoliday == "" {
		out = append(out, Violation{
			Step:  types.StepWorkTime,
			Level: LevelError,
			Code:  CodeWeeklyHolidayRequired,
			Field: fieldHoliday,
			Message: fmt.Sprintf("주 %s 이상 근무하는 경우 주휴일을 지정해야 합니다. (현재 주 %s)",
				FormatDuration(p.WeeklyHolidayThresholdMinutes), FormatDuration(weekly)),
		})
	}
	if ws.WeeklyHoliday != "" && ws.WorkingDays.Contains(ws.WeeklyHoliday) {
		out = append(out, Violation{
			Step:    types.StepWorkTime,
			Level:   LevelWarning,
			Code:    CodeWeeklyHolidayOverlap,
			Field:   fieldHoliday,
			Message: fmt.Sprintf("주휴일(%s)이 근무일과 겹칩니다.", ws.WeeklyHoliday.Korean()),
		})
	}
	return out
}

// CheckMinimumWage only covers hourly wages. An empty amount is reported by
// the completeness check instead.
func (p Policy) CheckMinimumWage(w types.Wage) *Violation {
	if w.Type != types.WageHourly || w.Amount == 0 || int64(w.Amount) >= p.MinimumWage {
		return nil
	}
	return &Violation{
		Step:    types.StepWage,
		Level:   LevelError,
		Code:    CodeWageBelowMinimum,
		Field:   fieldWageAmount,
		Message: fmt.Sprintf("시급은 최저임금(%s원) 이상이어야 합니다.", FormatAmount(types.Amount(p.MinimumWage))),
	}
}

// FormatAmount groups digits by thousands: 10030 -> "10,030".
func FormatAmount(a types.Amount) string {
	return humanize.Comma(int64(a))
}
