package compliance

import (
	"strings"

	"labor-contract/types"
)

func required(step types.Step, code, field, msg string) Violation {
	return Violation{Step: step, Level: LevelError, Code: code, Field: field, Message: msg}
}

// checkCompleteness lists the inputs each step needs before the wizard may
// move past it.
func checkCompleteness(rec types.ContractRecord, net int) []Violation {
	var out []Violation

	if rec.ContractType == "" {
		out = append(out, required(types.StepType, CodeContractTypeRequired, "contractType", "계약 유형을 선택해 주세요."))
	}

	if rec.StartWorkDate == nil {
		out = append(out, required(types.StepBasicInfo, CodeStartDateRequired, "startWorkDate", "근로개시일을 입력해 주세요."))
	}
	if !rec.Indefinite() && rec.EndWorkDate == nil {
		out = append(out, required(types.StepBasicInfo, CodeEndDateRequired, "endWorkDate", "기간의 정함이 있는 계약은 종료일을 입력해 주세요."))
	}
	if rec.StartWorkDate != nil && rec.EndWorkDate != nil && rec.EndWorkDate.Before(*rec.StartWorkDate) {
		out = append(out, required(types.StepBasicInfo, CodeEndBeforeStart, "endWorkDate", "종료일은 근로개시일 이후여야 합니다."))
	}
	if strings.TrimSpace(rec.Workplace) == "" {
		out = append(out, required(types.StepBasicInfo, CodeWorkplaceRequired, "workplace", "근무 장소를 입력해 주세요."))
	}
	if strings.TrimSpace(rec.JobDescription) == "" {
		out = append(out, required(types.StepBasicInfo, CodeJobDescriptionRequired, "jobDescription", "업무 내용을 입력해 주세요."))
	}

	if net <= 0 {
		out = append(out, required(types.StepWorkTime, CodeWorkTimeRequired, "workSchedule.startTime", "근무 시간을 입력해 주세요."))
	}
	if len(rec.WorkSchedule.WorkingDays) == 0 {
		out = append(out, required(types.StepWorkTime, CodeWorkingDaysRequired, "workSchedule.workingDays", "근무일을 하루 이상 선택해 주세요."))
	}

	if rec.Wage.Amount == 0 {
		out = append(out, required(types.StepWage, CodeWageAmountRequired, fieldWageAmount, "임금을 입력해 주세요."))
	}
	return out
}
