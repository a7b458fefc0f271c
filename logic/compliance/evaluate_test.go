package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-contract/types"
)

func completeRecord() types.ContractRecord {
	rec := types.NewContractRecord()
	rec.ContractType = types.ContractFixedTerm
	rec.EmployerName = "주식회사 한빛"
	rec.WorkerName = "김민준"
	rec.Workplace = "서울특별시 마포구"
	rec.JobDescription = "사무 보조"
	rec.StartWorkDate = types.NewDate(2025, time.March, 1)
	rec.EndWorkDate = types.NewDate(2026, time.February, 28)
	rec.WorkSchedule = types.WorkSchedule{
		StartTime:      types.Clock(9, 0),
		EndTime:        types.Clock(18, 0),
		BreakStartTime: types.Clock(12, 0),
		BreakEndTime:   types.Clock(13, 0),
		WorkingDays:    types.WeekdaySet{types.Monday, types.Tuesday, types.Wednesday, types.Thursday, types.Friday},
		WeeklyHoliday:  types.Sunday,
	}
	rec.Wage.Amount = 10030
	return rec
}

func codes(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Code)
	}
	return out
}

func TestEvaluateCompleteRecord(t *testing.T) {
	r := Evaluate(completeRecord())

	assert.Empty(t, r.Violations)
	assert.Equal(t, 540, r.StayMinutes)
	assert.Equal(t, 60, r.BreakMinutes)
	assert.Equal(t, 480, r.NetMinutes)
	assert.Equal(t, "8시간", r.NetDuration)
	assert.Equal(t, 2400, r.WeeklyMinutes)
	assert.True(t, r.HolidayRequired)
	assert.Equal(t, types.Amount(10030), r.ProbationAmount)
	require.NotNil(t, r.ProbationLimit)
	assert.Equal(t, "2025-06-01", r.ProbationLimit.String())
	for s := types.StepType; s <= types.LastStep; s++ {
		assert.True(t, r.Passes(s), s.String())
	}
}

func TestEvaluateEmptyRecord(t *testing.T) {
	r := Evaluate(types.NewContractRecord())

	assert.Equal(t, []string{CodeContractTypeRequired}, codes(r.Blocking(types.StepType)))
	assert.ElementsMatch(t, []string{
		CodeStartDateRequired, CodeEndDateRequired, CodeWorkplaceRequired, CodeJobDescriptionRequired,
	}, codes(r.Blocking(types.StepBasicInfo)))
	assert.ElementsMatch(t, []string{CodeWorkTimeRequired, CodeWorkingDaysRequired}, codes(r.Blocking(types.StepWorkTime)))
	assert.Equal(t, []string{CodeWageAmountRequired}, codes(r.Blocking(types.StepWage)))
	assert.True(t, r.Passes(types.StepAdditional))
	assert.True(t, r.Passes(types.StepReview))
}

func TestEvaluateStandardNeedsNoEndDate(t *testing.T) {
	rec := completeRecord()
	rec.ContractType = types.ContractStandard
	rec.EndWorkDate = nil
	assert.True(t, Evaluate(rec).Passes(types.StepBasicInfo))

	rec.ContractType = types.ContractPartTime
	assert.Equal(t, []string{CodeEndDateRequired}, codes(Evaluate(rec).Blocking(types.StepBasicInfo)))
}

func TestEvaluateEndBeforeStart(t *testing.T) {
	rec := completeRecord()
	rec.EndWorkDate = types.NewDate(2025, time.February, 1)
	assert.Equal(t, []string{CodeEndBeforeStart}, codes(Evaluate(rec).Blocking(types.StepBasicInfo)))
}

func TestEvaluateBreakBeforeMinorCap(t *testing.T) {
	rec := completeRecord()
	rec.ContractType = types.ContractMinor

	// 09:00-18:00 with a 60 minute break: break passes, net 480 breaks the cap
	got := codes(Evaluate(rec).Blocking(types.StepWorkTime))
	assert.Equal(t, []string{CodeMinorDailyCapExceeded}, got)

	// a 30 minute break fails the break rule and hides the cap
	rec.WorkSchedule.BreakEndTime = types.Clock(12, 30)
	got = codes(Evaluate(rec).Blocking(types.StepWorkTime))
	assert.Equal(t, []string{CodeBreakInsufficient8H}, got)

	// net 420 is within the cap
	rec.WorkSchedule.EndTime = types.Clock(17, 0)
	rec.WorkSchedule.BreakEndTime = types.Clock(13, 0)
	assert.True(t, Evaluate(rec).Passes(types.StepWorkTime))
}

func TestEvaluateHolidayOverlapDoesNotBlock(t *testing.T) {
	rec := completeRecord()
	rec.WorkSchedule.WeeklyHoliday = types.Friday

	r := Evaluate(rec)
	assert.True(t, r.Passes(types.StepWorkTime))
	assert.Contains(t, codes(r.Violations), CodeWeeklyHolidayOverlap)
}

func TestEvaluateProbation(t *testing.T) {
	rec := completeRecord()
	rec.EndWorkDate = types.NewDate(2026, time.April, 1)
	rec.Wage.HasProbation = true
	rec.Wage.ProbationWagePercent = 90

	r := Evaluate(rec)
	assert.True(t, r.ProbationAllowed)
	assert.Equal(t, types.Amount(9027), r.ProbationAmount)
	assert.True(t, r.Passes(types.StepWage))

	rec.JobCategory = types.JobSimpleLabor
	r = Evaluate(rec)
	assert.False(t, r.ProbationAllowed)
	assert.Equal(t, types.Amount(10030), r.ProbationAmount, "restricted reduction is not applied")
	assert.Contains(t, codes(r.Violations), CodeProbationSimpleLabor)
	assert.True(t, r.Passes(types.StepWage), "restriction is corrected, not blocking")
}

func TestEvaluateMinimumWageBlocksWageStep(t *testing.T) {
	rec := completeRecord()
	rec.Wage.Amount = 10000
	assert.Equal(t, []string{CodeWageBelowMinimum}, codes(Evaluate(rec).Blocking(types.StepWage)))
}

func TestEvaluateDoesNotMutateAndIsRepeatable(t *testing.T) {
	rec := completeRecord()
	rec.ContractType = types.ContractMinor
	rec.JobCategory = types.JobSimpleLabor
	rec.Wage.HasProbation = true
	rec.Wage.ProbationWagePercent = 80
	rec.WorkSchedule.WeeklyHoliday = types.Monday
	before := rec.Clone()

	first := Evaluate(rec)
	second := Evaluate(rec)
	assert.Equal(t, first, second)
	assert.Equal(t, before, rec)
}

func TestEvaluateOrdersViolationsByStep(t *testing.T) {
	r := Evaluate(types.NewContractRecord())
	for i := 1; i < len(r.Violations); i++ {
		assert.LessOrEqual(t, int(r.Violations[i-1].Step), int(r.Violations[i].Step))
	}
}
