package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"labor-contract/logger"
	"labor-contract/logic/advisor"
	"labor-contract/logic/compliance"
	"labor-contract/logic/wizard"
	"labor-contract/types"
)

// SessionView is a session as clients see it, with the compliance report
// for its current contract.
type SessionView struct {
	ID          string                  `json:"id"`
	CurrentStep types.Step              `json:"currentStep"`
	StepName    string                  `json:"stepName"`
	Contract    types.ContractRecord    `json:"contract"`
	Compliance  compliance.Report       `json:"compliance"`
	Corrections []compliance.Correction `json:"corrections,omitempty"`
	LastReport  *types.ReviewReport     `json:"lastReport,omitempty"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

type WizardService struct {
	store   SessionStore
	machine *wizard.Machine
	locks   keyedMutex
	now     func() time.Time
}

func NewWizardService(store SessionStore, machine *wizard.Machine) *WizardService {
	return &WizardService{
		store:   store,
		machine: machine,
		now:     time.Now,
	}
}

func (s *WizardService) Policy() compliance.Policy {
	return s.machine.Policy()
}

func (s *WizardService) view(sess *types.Session, fixes []compliance.Correction) *SessionView {
	return &SessionView{
		ID:          sess.ID,
		CurrentStep: sess.CurrentStep,
		StepName:    sess.CurrentStep.String(),
		Contract:    sess.Contract,
		Compliance:  s.machine.Policy().Evaluate(sess.Contract),
		Corrections: fixes,
		LastReport:  sess.LastReport,
		UpdatedAt:   sess.UpdatedAt,
	}
}

// Create starts a session on the first step with an empty contract.
func (s *WizardService) Create(ctx context.Context) (*SessionView, error) {
	st := wizard.NewState()
	now := s.now()
	sess := &types.Session{
		ID:          uuid.NewString(),
		CurrentStep: st.CurrentStep,
		Contract:    st.Contract,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	logger.L().Info("session created", zap.String("session", sess.ID))
	return s.view(sess, nil), nil
}

func (s *WizardService) Get(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess, nil), nil
}

// Dispatch applies one action. A refused NEXT_STEP comes back as a
// *wizard.GateError and leaves the session untouched.
func (s *WizardService) Dispatch(ctx context.Context, id string, a wizard.Action) (*SessionView, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		s.forgetMissing(id, err)
		return nil, err
	}
	next, fixes, err := s.machine.Reduce(wizard.State{CurrentStep: sess.CurrentStep, Contract: sess.Contract}, a)
	if err != nil {
		return nil, err
	}

	sess.CurrentStep = next.CurrentStep
	sess.Contract = next.Contract
	switch a.Type {
	case wizard.ActionSetField, wizard.ActionUpdateSection, wizard.ActionReset:
		// 合同变更后旧的审查结果失效
		sess.LastReport = nil
	}
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.L().Debug("session action",
		zap.String("session", id),
		zap.String("action", string(a.Type)),
		zap.Stringer("step", sess.CurrentStep),
		zap.Int("corrections", len(fixes)))
	return s.view(sess, fixes), nil
}

// Evaluation is the rule engine's answer for a contract sent without a
// session: the corrected record, what was corrected, and the report.
type Evaluation struct {
	Contract    types.ContractRecord    `json:"contract"`
	Corrections []compliance.Correction `json:"corrections"`
	Compliance  compliance.Report       `json:"compliance"`
}

// Evaluate normalizes a copy of rec and runs the rule engine on it. rec
// itself is left alone.
func (s *WizardService) Evaluate(rec types.ContractRecord) Evaluation {
	policy := s.machine.Policy()
	rec = rec.Clone()
	fixes := policy.Normalize(&rec)
	if fixes == nil {
		fixes = []compliance.Correction{}
	}
	return Evaluation{
		Contract:    rec,
		Corrections: fixes,
		Compliance:  policy.Evaluate(rec),
	}
}

// Compliance evaluates the stored contract without changing it.
func (s *WizardService) Compliance(ctx context.Context, id string) (compliance.Report, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return compliance.Report{}, err
	}
	return s.machine.Policy().Evaluate(sess.Contract), nil
}

func (s *WizardService) Delete(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.locks.forget(id)
	return nil
}

// ApplyClassification writes a classification into the session's job
// category through the same SET_FIELD path a user edit takes.
func (s *WizardService) ApplyClassification(ctx context.Context, id string, res types.ClassificationResult) (*SessionView, error) {
	var scratch types.ContractRecord
	advisor.ApplyClassification(&scratch, res)

	category, err := wizard.SetField("jobCategory", scratch.JobCategory)
	if err != nil {
		return nil, err
	}
	if _, err := s.Dispatch(ctx, id, category); err != nil {
		return nil, err
	}
	reason, err := wizard.SetField("jobCategoryReason", scratch.JobCategoryReason)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, id, reason)
}

// attachReport stores a finished review on the session.
func (s *WizardService) attachReport(ctx context.Context, id string, rep *types.ReviewReport) error {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		s.forgetMissing(id, err)
		return err
	}
	r := *rep
	r.Issues = append([]types.Issue(nil), rep.Issues...)
	sess.LastReport = &r
	sess.UpdatedAt = s.now()
	return s.store.Save(ctx, sess)
}

// forgetMissing drops the lock of an id the store does not know.
func (s *WizardService) forgetMissing(id string, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		s.locks.forget(id)
	}
}

func (s *WizardService) load(ctx context.Context, id string) (*types.Session, error) {
	return s.store.Get(ctx, id)
}

// PurgeIdle deletes sessions idle for longer than ttl.
func (s *WizardService) PurgeIdle(ctx context.Context, ttl time.Duration) (int64, error) {
	ids, err := s.store.PurgeIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("purge idle sessions: %w", err)
	}
	for _, id := range ids {
		s.locks.forget(id)
	}
	return int64(len(ids)), nil
}
