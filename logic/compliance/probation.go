package compliance

import (
	"fmt"

	"labor-contract/types"
)

// ProbationRestriction explains why a probation wage reduction is not allowed
// for the record, or returns nil. The job category reason wins over the
// contract length reason; the two are never merged.
func (p Policy) ProbationRestriction(rec types.ContractRecord) *Violation {
	if rec.JobCategory == types.JobSimpleLabor {
		return &Violation{
			Step:    types.StepWage,
			Level:   LevelWarning,
			Code:    CodeProbationSimpleLabor,
			Field:   fieldProbationPc,
			Message: "단순노무직종은 수습기간에도 최저임금을 감액할 수 없습니다. (최저임금법 제5조)",
		}
	}
	if p.shortContract(rec) {
		return &Violation{
			Step:  types.StepWage,
			Level: LevelWarning,
			Code:  CodeProbationShortContract,
			Field: fieldProbationPc,
			Message: fmt.Sprintf("수습기간 임금 감액은 %d년 이상 근로계약을 체결한 경우에만 가능합니다.",
				p.ProbationMinContractYears),
		}
	}
	return nil
}

// shortContract compares calendar dates, so 2025-01-01..2025-12-31 is short
// and 2025-01-01..2026-01-01 is not. Missing dates are not short.
func (p Policy) shortContract(rec types.ContractRecord) bool {
	if rec.Indefinite() || rec.StartWorkDate == nil || rec.EndWorkDate == nil {
		return false
	}
	return rec.EndWorkDate.Before(rec.StartWorkDate.AddMonths(12 * p.ProbationMinContractYears))
}

// ProbationLimit is the last day a probation period may end on.
func (p Policy) ProbationLimit(start types.Date) types.Date {
	return start.AddMonths(p.ProbationMaxMonths)
}

// DefaultProbationEnd is the end date proposed when probation is switched on.
func (p Policy) DefaultProbationEnd(start types.Date) types.Date {
	return start.AddMonths(p.ProbationMaxMonths).AddDays(-1)
}

// CheckProbationEnd rejects an end date after the limit or before the start.
func (p Policy) CheckProbationEnd(rec types.ContractRecord) *Violation {
	w := rec.Wage
	if !w.HasProbation || w.ProbationEndDate == nil || rec.StartWorkDate == nil {
		return nil
	}
	start := *rec.StartWorkDate
	limit := p.ProbationLimit(start)
	end := *w.ProbationEndDate
	if !end.After(limit) && !end.Before(start) {
		return nil
	}
	return &Violation{
		Step:  types.StepWage,
		Level: LevelError,
		Code:  CodeProbationEndOutOfRange,
		Field: fieldProbationTo,
		Message: fmt.Sprintf("수습기간 종료일은 %s부터 %s 사이여야 합니다. (최대 %d개월)",
			start, limit, p.ProbationMaxMonths),
	}
}

// EffectivePercent is the probation wage percent the record may actually
// apply: clamped to [ProbationMinPercent, 100], and 100 without probation or
// under a restriction.
func (p Policy) EffectivePercent(rec types.ContractRecord) int {
	if !rec.Wage.HasProbation || p.ProbationRestriction(rec) != nil {
		return 100
	}
	return p.clampPercent(rec.Wage.ProbationWagePercent)
}

func (p Policy) clampPercent(pc int) int {
	if pc < p.ProbationMinPercent {
		return p.ProbationMinPercent
	}
	if pc > 100 {
		return 100
	}
	return pc
}

// ProbationAmount is floor(base * percent / 100).
func ProbationAmount(base types.Amount, percent int) types.Amount {
	return base * types.Amount(percent) / 100
}

// Normalize writes the probation corrections back into rec and lists them.
// It is the only function in this package that mutates its input, and
// running it again on its own output changes nothing.
func (p Policy) Normalize(rec *types.ContractRecord) []Correction {
	var out []Correction
	w := &rec.Wage

	if !w.HasProbation {
		if w.ProbationWagePercent != 100 {
			out = append(out, Correction{Field: fieldProbationPc, From: w.ProbationWagePercent, To: 100})
			w.ProbationWagePercent = 100
		}
		if w.ProbationEndDate != nil {
			out = append(out, Correction{Field: fieldProbationTo, From: w.ProbationEndDate.String(), To: nil})
			w.ProbationEndDate = nil
		}
		return out
	}

	if pc := p.clampPercent(w.ProbationWagePercent); pc != w.ProbationWagePercent {
		out = append(out, Correction{Field: fieldProbationPc, From: w.ProbationWagePercent, To: pc})
		w.ProbationWagePercent = pc
	}
	if r := p.ProbationRestriction(*rec); r != nil && w.ProbationWagePercent != 100 {
		out = append(out, Correction{Field: fieldProbationPc, From: w.ProbationWagePercent, To: 100, Code: r.Code})
		w.ProbationWagePercent = 100
	}
	if w.ProbationEndDate == nil && rec.StartWorkDate != nil {
		end := p.DefaultProbationEnd(*rec.StartWorkDate)
		out = append(out, Correction{Field: fieldProbationTo, From: nil, To: end.String()})
		w.ProbationEndDate = &end
	}
	return out
}
