package compliance

import (
	"errors"
	"fmt"
)

// Policy holds the statutory constants the rules compare against. They change
// by year, so the service loads them from configuration.
type Policy struct {
	MinimumWage                   int64 // KRW per hour
	ProbationMaxMonths            int
	ProbationMinPercent           int
	ProbationMinContractYears     int
	MinorDailyCapMinutes          int
	WeeklyHolidayThresholdMinutes int
}

// DefaultPolicy is the 2025 rule set.
func DefaultPolicy() Policy {
	return Policy{
		MinimumWage:                   10030,
		ProbationMaxMonths:            3,
		ProbationMinPercent:           90,
		ProbationMinContractYears:     1,
		MinorDailyCapMinutes:          420,
		WeeklyHolidayThresholdMinutes: 900,
	}
}

// Validate rejects rule sets the engine cannot honour, such as a probation
// floor outside 90..100 percent.
func (p Policy) Validate() error {
	var errs []error
	if p.MinimumWage <= 0 {
		errs = append(errs, fmt.Errorf("minimum_wage must be positive, got %d", p.MinimumWage))
	}
	if p.ProbationMaxMonths <= 0 {
		errs = append(errs, fmt.Errorf("probation_max_months must be positive, got %d", p.ProbationMaxMonths))
	}
	if p.ProbationMinPercent < 90 || p.ProbationMinPercent > 100 {
		errs = append(errs, fmt.Errorf("probation_min_percent must be within 90..100, got %d", p.ProbationMinPercent))
	}
	if p.ProbationMinContractYears < 0 {
		errs = append(errs, fmt.Errorf("probation_min_contract_years must not be negative, got %d", p.ProbationMinContractYears))
	}
	if p.MinorDailyCapMinutes <= 0 || p.MinorDailyCapMinutes > 24*60 {
		errs = append(errs, fmt.Errorf("minor_daily_cap_minutes must be within 1..1440, got %d", p.MinorDailyCapMinutes))
	}
	if p.WeeklyHolidayThresholdMinutes <= 0 {
		errs = append(errs, fmt.Errorf("weekly_holiday_threshold_minutes must be positive, got %d", p.WeeklyHolidayThresholdMinutes))
	}
	return errors.Join(errs...)
}
