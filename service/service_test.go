package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"labor-contract/logic/compliance"
	"labor-contract/logic/wizard"
	"labor-contract/storage/memory"
	"labor-contract/types"
	"labor-contract/vars"
)

// fakeModel replies with a fixed string and counts calls.
type fakeModel struct {
	mu    sync.Mutex
	reply string
	err   error
	delay time.Duration
	calls atomic.Int32
	seen  []*schema.Message
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeModel) prompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seen) == 0 {
		return ""
	}
	return f.seen[0].Content
}

func newWizard() (*WizardService, *memory.SessionStore) {
	store := memory.NewSessionStore()
	return NewWizardService(store, wizard.NewMachine(compliance.DefaultPolicy())), store
}

func newReview(m model.BaseChatModel, w *WizardService, catalog *CatalogService) *ReviewService {
	return NewReviewService(m, vars.LLMConfig{Timeout: time.Second}, w, catalog)
}

// mustAction unwraps an action constructor: mustAction(t)(SetField(...)).
func mustAction(t *testing.T) func(wizard.Action, error) wizard.Action {
	return func(a wizard.Action, err error) wizard.Action {
		t.Helper()
		require.NoError(t, err)
		return a
	}
}

func dispatch(t *testing.T, w *WizardService, id string, actions ...wizard.Action) *SessionView {
	t.Helper()
	var (
		v   *SessionView
		err error
	)
	for _, a := range actions {
		v, err = w.Dispatch(context.Background(), id, a)
		require.NoError(t, err, "action %s %s%s", a.Type, a.Field, a.Section)
	}
	return v
}

// walkToReview fills a valid part-time contract and moves to the last step.
func walkToReview(t *testing.T, w *WizardService, id string) *SessionView {
	t.Helper()
	return dispatch(t, w, id,
		mustAction(t)(wizard.SetField("contractType", types.ContractPartTime)),
		wizard.NextStep(),
		mustAction(t)(wizard.SetField("startWorkDate", "2026-03-02")),
		mustAction(t)(wizard.SetField("endWorkDate", "2026-08-31")),
		mustAction(t)(wizard.SetField("workplace", "서울특별시 마포구")),
		mustAction(t)(wizard.SetField("jobDescription", "식당 주방 설거지")),
		wizard.NextStep(),
		mustAction(t)(wizard.UpdateSection("workSchedule", map[string]any{
			"startTime":      "10:00",
			"endTime":        "15:00",
			"breakStartTime": "12:00",
			"breakEndTime":   "12:30",
			"workingDays":    []string{"Mon", "Wed", "Fri"},
		})),
		wizard.NextStep(),
		wizard.NextStep(),
		wizard.NextStep(),
	)
}

var errBoom = errors.New("boom")
