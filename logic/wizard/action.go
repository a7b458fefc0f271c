package wizard

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

type ActionType string

const (
	ActionSetField      ActionType = "SET_FIELD"      // replace one top-level contract field
	ActionUpdateSection ActionType = "UPDATE_SECTION" // merge a patch into workSchedule, wage or otherDetails
	ActionNextStep      ActionType = "NEXT_STEP"
	ActionPrevStep      ActionType = "PREV_STEP"
	ActionReset         ActionType = "RESET"
)

var ErrUnknownAction = errors.New("unknown action type")

// ParseActionType validates an action type coming from outside the process.
// Reduce itself panics on unknown types.
func ParseActionType(s string) (ActionType, error) {
	switch t := ActionType(s); t {
	case ActionSetField, ActionUpdateSection, ActionNextStep, ActionPrevStep, ActionReset:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Action is one user edit or navigation. Value carries the JSON for
// SET_FIELD (the new field value) and UPDATE_SECTION (an object patch).
type Action struct {
	Type    ActionType      `json:"type"`
	Field   string          `json:"field,omitempty"`
	Section string          `json:"section,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

func SetField(field string, value any) (Action, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s: %w", field, err)
	}
	return Action{Type: ActionSetField, Field: field, Value: raw}, nil
}

func UpdateSection(section string, patch any) (Action, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s patch: %w", section, err)
	}
	return Action{Type: ActionUpdateSection, Section: section, Value: raw}, nil
}

func NextStep() Action { return Action{Type: ActionNextStep} }
func PrevStep() Action { return Action{Type: ActionPrevStep} }
func Reset() Action    { return Action{Type: ActionReset} }
