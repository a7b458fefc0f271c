package types

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

type ContractType string

const (
	ContractStandard  ContractType = "STANDARD"   // 정규직, no end date
	ContractFixedTerm ContractType = "FIXED_TERM" // 계약직
	ContractPartTime  ContractType = "PART_TIME"  // 아르바이트
	ContractMinor     ContractType = "MINOR"      // 연소자
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractStandard, ContractFixedTerm, ContractPartTime, ContractMinor:
		return true
	}
	return false
}

func (t *ContractType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, (*string)(t), "contract type", func(s string) bool { return ContractType(s).Valid() })
}

type JobCategory string

const (
	JobOffice      JobCategory = "OFFICE"
	JobSimpleLabor JobCategory = "SIMPLE_LABOR" // KSCO major group 9
)

func (c *JobCategory) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, (*string)(c), "job category", func(s string) bool {
		return JobCategory(s) == JobOffice || JobCategory(s) == JobSimpleLabor
	})
}

type WageType string

const (
	WageHourly  WageType = "HOURLY"
	WageMonthly WageType = "MONTHLY"
	WageDaily   WageType = "DAILY"
)

func (w *WageType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, (*string)(w), "wage type", func(s string) bool {
		switch WageType(s) {
		case WageHourly, WageMonthly, WageDaily:
			return true
		}
		return false
	})
}

func unmarshalEnum(data []byte, dst *string, what string, valid func(string) bool) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s must be a string: %w", what, err)
	}
	if s != "" && !valid(s) {
		return fmt.Errorf("unknown %s %q", what, s)
	}
	*dst = s
	return nil
}

// Amount is a non-negative KRW value. Besides JSON numbers it accepts the
// comma-grouped strings form inputs produce ("10,030"); "" decodes to 0.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return a.set(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	return a.set(string(n))
}

func (a *Amount) set(s string) error {
	if s == "" {
		*a = 0
		return nil
	}
	// 원 단위 정수만 허용
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("amount must be a whole number of won: %q", s)
	}
	if v < 0 {
		return fmt.Errorf("amount must not be negative: %s", s)
	}
	*a = Amount(v)
	return nil
}

type WorkSchedule struct {
	StartTime      *TimeOfDay `json:"startTime"`
	EndTime        *TimeOfDay `json:"endTime"`
	BreakStartTime *TimeOfDay `json:"breakStartTime"`
	BreakEndTime   *TimeOfDay `json:"breakEndTime"`
	WorkingDays    WeekdaySet `json:"workingDays"`
	WeeklyHoliday  Weekday    `json:"weeklyHoliday"`
}

type Wage struct {
	Type                 WageType `json:"type"`
	Amount               Amount   `json:"amount"`
	HasBonus             bool     `json:"hasBonus"`
	BonusAmount          Amount   `json:"bonusAmount"`
	OtherAllowances      []string `json:"otherAllowances"`
	PaymentDate          string   `json:"paymentDate"`
	PaymentMethod        string   `json:"paymentMethod"`
	HasProbation         bool     `json:"hasProbation"`
	ProbationEndDate     *Date    `json:"probationEndDate"`
	ProbationWagePercent int      `json:"probationWagePercent"`
}

type SocialInsurance struct {
	Employment bool `json:"employment"` // 고용보험
	Accident   bool `json:"accident"`   // 산재보험
	Pension    bool `json:"pension"`    // 국민연금
	Health     bool `json:"health"`     // 건강보험
}

// OtherDetails covers items 7~11 of the standard contract form.
type OtherDetails struct {
	AnnualLeave      bool            `json:"annualLeave"`
	SocialInsurance  SocialInsurance `json:"socialInsurance"`
	ContractDelivery bool            `json:"contractDelivery"`
	OtherTerms       string          `json:"otherTerms"`
}

// ContractRecord is the document the wizard fills in step by step.
type ContractRecord struct {
	ContractType      ContractType `json:"contractType"`
	JobCategory       JobCategory  `json:"jobCategory"`
	JobCategoryReason string       `json:"jobCategoryReason,omitempty"`

	EmployerName   string `json:"employerName"`
	WorkerName     string `json:"workerName"`
	Workplace      string `json:"workplace"`
	JobDescription string `json:"jobDescription"`

	StartWorkDate *Date `json:"startWorkDate"`
	EndWorkDate   *Date `json:"endWorkDate"`

	WorkSchedule WorkSchedule `json:"workSchedule"`
	Wage         Wage         `json:"wage"`
	OtherDetails OtherDetails `json:"otherDetails"`
}

// NewContractRecord returns the empty record a wizard session starts from.
func NewContractRecord() ContractRecord {
	return ContractRecord{
		JobCategory: JobOffice,
		WorkSchedule: WorkSchedule{
			WorkingDays: WeekdaySet{},
		},
		Wage: Wage{
			Type:                 WageHourly,
			OtherAllowances:      []string{},
			ProbationWagePercent: 100,
		},
		OtherDetails: OtherDetails{
			AnnualLeave: true,
			SocialInsurance: SocialInsurance{
				Employment: true,
				Accident:   true,
				Pension:    true,
				Health:     true,
			},
			ContractDelivery: true,
		},
	}
}

// Indefinite reports whether the contract has no fixed end date.
func (c ContractRecord) Indefinite() bool {
	return c.ContractType == ContractStandard
}

// Clone returns a deep copy; pointer and slice fields are not shared.
func (c ContractRecord) Clone() ContractRecord {
	out := c
	out.StartWorkDate = cloneDate(c.StartWorkDate)
	out.EndWorkDate = cloneDate(c.EndWorkDate)
	out.WorkSchedule.StartTime = cloneClock(c.WorkSchedule.StartTime)
	out.WorkSchedule.EndTime = cloneClock(c.WorkSchedule.EndTime)
	out.WorkSchedule.BreakStartTime = cloneClock(c.WorkSchedule.BreakStartTime)
	out.WorkSchedule.BreakEndTime = cloneClock(c.WorkSchedule.BreakEndTime)
	if c.WorkSchedule.WorkingDays != nil {
		out.WorkSchedule.WorkingDays = append(WeekdaySet{}, c.WorkSchedule.WorkingDays...)
	}
	if c.Wage.OtherAllowances != nil {
		out.Wage.OtherAllowances = append([]string{}, c.Wage.OtherAllowances...)
	}
	out.Wage.ProbationEndDate = cloneDate(c.Wage.ProbationEndDate)
	return out
}

func cloneDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneClock(t *TimeOfDay) *TimeOfDay {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
