package wizard

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"labor-contract/logic/compliance"
	"labor-contract/types"
)

var (
	ErrFinalStep      = errors.New("already at the final step")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownSection = errors.New("unknown section")
	ErrInvalidValue   = errors.New("invalid value")
)

// GateError refuses NEXT_STEP and carries what has to be fixed first.
type GateError struct {
	Step       types.Step
	Violations []compliance.Violation
}

func (e *GateError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("step %s is incomplete: %s", e.Step, strings.Join(msgs, "; "))
}

// State is the whole wizard: the page the user is on and the record so far.
type State struct {
	CurrentStep types.Step           `json:"currentStep"`
	Contract    types.ContractRecord `json:"contract"`
}

func NewState() State {
	return State{CurrentStep: types.StepType, Contract: types.NewContractRecord()}
}

// Machine applies actions to states under one compliance policy.
type Machine struct {
	policy compliance.Policy
}

func NewMachine(policy compliance.Policy) *Machine {
	return &Machine{policy: policy}
}

func (m *Machine) Policy() compliance.Policy {
	return m.policy
}

// Reduce returns the state after applying a. The input state is never
// modified; on error it is the state returned. Every contract change is
// followed by Normalize and the corrections it made are returned.
func (m *Machine) Reduce(s State, a Action) (State, []compliance.Correction, error) {
	next := State{CurrentStep: s.CurrentStep, Contract: s.Contract.Clone()}
	var fixes []compliance.Correction

	switch a.Type {
	case ActionSetField:
		if err := setField(&next.Contract, a.Field, a.Value); err != nil {
			return s, nil, err
		}
	case ActionUpdateSection:
		if err := updateSection(&next.Contract, a.Section, a.Value); err != nil {
			return s, nil, err
		}
	case ActionNextStep:
		if s.CurrentStep >= types.LastStep {
			return s, nil, ErrFinalStep
		}
		report := m.policy.Evaluate(next.Contract)
		if blocking := report.Blocking(s.CurrentStep); len(blocking) > 0 {
			return s, nil, &GateError{Step: s.CurrentStep, Violations: blocking}
		}
		next.CurrentStep++
		if next.CurrentStep == types.StepWage && next.Contract.Wage.Amount == 0 {
			next.Contract.Wage.Amount = types.Amount(m.policy.MinimumWage)
			fixes = append(fixes, compliance.Correction{Field: "wage.amount", From: 0, To: m.policy.MinimumWage})
		}
	case ActionPrevStep:
		if next.CurrentStep > types.StepType {
			next.CurrentStep--
		}
		return next, nil, nil
	case ActionReset:
		return NewState(), nil, nil
	default:
		panic(fmt.Sprintf("wizard: unhandled action type %q", a.Type))
	}

	fixes = append(fixes, m.policy.Normalize(&next.Contract)...)
	return next, fixes, nil
}

func setField(rec *types.ContractRecord, field string, raw json.RawMessage) error {
	var dst any
	switch field {
	case "contractType":
		dst = &rec.ContractType
	case "jobCategory":
		dst = &rec.JobCategory
	case "jobCategoryReason":
		dst = &rec.JobCategoryReason
	case "employerName":
		dst = &rec.EmployerName
	case "workerName":
		dst = &rec.WorkerName
	case "workplace":
		dst = &rec.Workplace
	case "jobDescription":
		dst = &rec.JobDescription
	case "startWorkDate":
		dst = &rec.StartWorkDate
	case "endWorkDate":
		dst = &rec.EndWorkDate
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	return nil
}

// updateSection merges the keys present in patch into one section. Keys the
// section does not have are rejected.
func updateSection(rec *types.ContractRecord, section string, patch json.RawMessage) error {
	var dst any
	switch section {
	case "workSchedule":
		dst = &rec.WorkSchedule
	case "wage":
		dst = &rec.Wage
	case "otherDetails":
		dst = &rec.OtherDetails
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	patch = bytes.TrimSpace(patch)
	if len(patch) == 0 || patch[0] != '{' {
		return fmt.Errorf("%w: %s patch must be an object", ErrInvalidValue, section)
	}
	dec := json.NewDecoder(bytes.NewReader(patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, section, err)
	}
	return nil
}
