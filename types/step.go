package types

// Step indexes the wizard pages.
type Step int

const (
	StepType Step = iota
	StepBasicInfo
	StepWorkTime
	StepWage
	StepAdditional
	StepReview
)

// LastStep is the final page; there is no transition past it.
const LastStep = StepReview

var stepNames = [...]string{"TYPE", "BASIC_INFO", "WORK_TIME", "WAGE", "ADDITIONAL", "REVIEW"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "UNKNOWN"
	}
	return stepNames[s]
}
