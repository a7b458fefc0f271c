package compliance

import (
	"sort"

	"labor-contract/types"
)

// Report is everything the rules derive from one record snapshot.
type Report struct {
	StayMinutes      int          `json:"stayMinutes"`
	BreakMinutes     int          `json:"breakMinutes"`
	NetMinutes       int          `json:"netMinutes"`
	NetDuration      string       `json:"netDuration"`
	WeeklyMinutes    int          `json:"weeklyMinutes"`
	HolidayRequired  bool         `json:"holidayRequired"`
	ProbationAllowed bool         `json:"probationAllowed"`
	ProbationLimit   *types.Date  `json:"probationLimit"`
	ProbationAmount  types.Amount `json:"probationAmount"`
	Violations       []Violation  `json:"violations"`
}

// Blocking returns the ERROR violations of one step.
func (r Report) Blocking(step types.Step) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Step == step && v.Blocking() {
			out = append(out, v)
		}
	}
	return out
}

// Passes reports whether the wizard may leave step.
func (r Report) Passes(step types.Step) bool {
	return len(r.Blocking(step)) == 0
}

// Evaluate runs every rule against rec with the default policy.
func Evaluate(rec types.ContractRecord) Report {
	return DefaultPolicy().Evaluate(rec)
}

// Evaluate runs every rule against rec. It does not modify rec and keeps no
// state between calls.
func (p Policy) Evaluate(rec types.ContractRecord) Report {
	stay, brk, net := ScheduleMinutes(rec.WorkSchedule)
	weekly := WeeklyMinutes(net, len(rec.WorkSchedule.WorkingDays))

	r := Report{
		StayMinutes:     stay,
		BreakMinutes:    brk,
		NetMinutes:      net,
		NetDuration:     FormatDuration(net),
		WeeklyMinutes:   weekly,
		HolidayRequired: p.HolidayRequired(weekly),
		ProbationAmount: ProbationAmount(rec.Wage.Amount, p.EffectivePercent(rec)),
		Violations:      checkCompleteness(rec, net),
	}

	if v := CheckBreakWindow(rec.WorkSchedule); v != nil {
		r.Violations = append(r.Violations, *v)
	}
	// the minor cap is only looked at once the break is sufficient
	if v := CheckBreakTime(stay, brk); v != nil {
		r.Violations = append(r.Violations, *v)
	} else if v := p.CheckMinorCap(rec.ContractType, net); v != nil {
		r.Violations = append(r.Violations, *v)
	}
	r.Violations = append(r.Violations, p.CheckWeeklyHoliday(rec.WorkSchedule, net)...)

	if v := p.CheckMinimumWage(rec.Wage); v != nil {
		r.Violations = append(r.Violations, *v)
	}
	restriction := p.ProbationRestriction(rec)
	r.ProbationAllowed = restriction == nil
	if rec.Wage.HasProbation && restriction != nil {
		r.Violations = append(r.Violations, *restriction)
	}
	if rec.StartWorkDate != nil {
		limit := p.ProbationLimit(*rec.StartWorkDate)
		r.ProbationLimit = &limit
	}
	if v := p.CheckProbationEnd(rec); v != nil {
		r.Violations = append(r.Violations, *v)
	}

	sort.SliceStable(r.Violations, func(i, j int) bool {
		return r.Violations[i].Step < r.Violations[j].Step
	})
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
	return r
}
