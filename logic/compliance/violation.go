package compliance

import "labor-contract/types"

type Level string

const (
	LevelError   Level = "ERROR"   // blocks the step
	LevelWarning Level = "WARNING" // shown to the user only
)

const (
	CodeContractTypeRequired   = "CONTRACT_TYPE_REQUIRED"
	CodeStartDateRequired      = "START_DATE_REQUIRED"
	CodeEndDateRequired        = "END_DATE_REQUIRED"
	CodeEndBeforeStart         = "END_BEFORE_START"
	CodeWorkplaceRequired      = "WORKPLACE_REQUIRED"
	CodeJobDescriptionRequired = "JOB_DESCRIPTION_REQUIRED"
	CodeWorkTimeRequired       = "WORK_TIME_REQUIRED"
	CodeWorkingDaysRequired    = "WORKING_DAYS_REQUIRED"
	CodeWageAmountRequired     = "WAGE_AMOUNT_REQUIRED"

	CodeBreakInsufficient8H    = "BREAK_INSUFFICIENT_8H"
	CodeBreakInsufficient4H    = "BREAK_INSUFFICIENT_4H"
	CodeBreakOutsideShift      = "BREAK_OUTSIDE_SHIFT"
	CodeMinorDailyCapExceeded  = "MINOR_DAILY_CAP_EXCEEDED"
	CodeWeeklyHolidayRequired  = "WEEKLY_HOLIDAY_REQUIRED"
	CodeWeeklyHolidayOverlap   = "WEEKLY_HOLIDAY_OVERLAP"
	CodeWageBelowMinimum       = "WAGE_BELOW_MINIMUM"
	CodeProbationSimpleLabor   = "PROBATION_SIMPLE_LABOR"
	CodeProbationShortContract = "PROBATION_SHORT_CONTRACT"
	CodeProbationEndOutOfRange = "PROBATION_END_OUT_OF_RANGE"
)

// Violation is a non-fatal finding attached to the wizard step whose input
// caused it. Validation never returns an error; it returns these.
type Violation struct {
	Step    types.Step `json:"step"`
	Level   Level      `json:"level"`
	Code    string     `json:"code"`
	Field   string     `json:"field,omitempty"`
	Message string     `json:"message"`
}

func (v Violation) Blocking() bool {
	return v.Level == LevelError
}

// Correction records a value Normalize wrote back into the record.
type Correction struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
	Code  string `json:"code,omitempty"`
}
