package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"labor-contract/logger"
	"labor-contract/logic/advisor"
	"labor-contract/types"
	"labor-contract/vars"
)

// ReviewService owns every model call: review, chat and job
// classification, both stateless and bound to a wizard session.
type ReviewService struct {
	chatModel model.BaseChatModel
	wizard    *WizardService
	catalog   *CatalogService
	limiter   *rate.Limiter
	timeout   time.Duration
	flight    singleflight.Group
}

// NewReviewService wires the model. catalog may be nil, in which case
// classification shows the model the whole KSCO table.
func NewReviewService(chatModel model.BaseChatModel, cfg vars.LLMConfig, wizard *WizardService, catalog *CatalogService) *ReviewService {
	limit := rate.Inf
	burst := 1
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
		burst = cfg.RatePerMinute
	}
	return &ReviewService{
		chatModel: chatModel,
		wizard:    wizard,
		catalog:   catalog,
		limiter:   rate.NewLimiter(limit, burst),
		timeout:   cfg.Timeout,
	}
}

// call waits for a limiter token and bounds fn by the model timeout.
func (s *ReviewService) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("model rate limit: %w", err)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	err := fn(ctx)
	logger.L().Debug("model call", zap.Duration("took", time.Since(start)), zap.Error(err))
	return err
}

// Review checks a contract that is not tied to a session. The model sees
// the record after the probation corrections a wizard edit would apply.
func (s *ReviewService) Review(ctx context.Context, rec types.ContractRecord) (*types.ReviewReport, error) {
	policy := s.wizard.Policy()
	rec = rec.Clone()
	policy.Normalize(&rec)
	report := policy.Evaluate(rec)

	var out *types.ReviewReport
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		out, err = advisor.Review(ctx, s.chatModel, policy, rec, report)
		return err
	})
	if err != nil {
		logger.L().Error("review failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *ReviewService) Chat(ctx context.Context, message string, contextData any) (*types.ChatReply, error) {
	var out *types.ChatReply
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		out, err = advisor.Chat(ctx, s.chatModel, message, contextData)
		return err
	})
	if err != nil {
		logger.L().Error("chat failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Classify decides whether a job is simple labor. Catalog candidates
// narrow the guide when the catalog is available.
func (s *ReviewService) Classify(ctx context.Context, jobDescription string) (*types.ClassificationResult, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, ErrNoJobDescription
	}

	var candidates []types.Occupation
	if s.catalog != nil {
		var err error
		candidates, err = s.catalog.Candidates(ctx, jobDescription)
		if err != nil {
			logger.L().Warn("catalog unavailable, using the full guide", zap.Error(err))
			candidates = nil
		}
	}

	var out *types.ClassificationResult
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		out, err = advisor.Classify(ctx, s.chatModel, jobDescription, candidates)
		return err
	})
	if err != nil {
		logger.L().Error("classify failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// ReviewSession reviews the session's contract and keeps the report on the
// session. Concurrent calls for one session share a single model call.
func (s *ReviewService) ReviewSession(ctx context.Context, id string) (*types.ReviewReport, error) {
	v, err, shared := s.flight.Do(id, func() (any, error) {
		// 结果由所有等待者共享，不随单个请求取消
		ctx := context.WithoutCancel(ctx)

		sess, err := s.wizard.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if sess.CurrentStep < types.StepReview {
			return nil, ErrNotReviewable
		}
		rep, err := s.Review(ctx, sess.Contract)
		if err != nil {
			return nil, err
		}
		if err := s.wizard.attachReport(ctx, id, rep); err != nil {
			return nil, fmt.Errorf("store review: %w", err)
		}
		return rep, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.L().Debug("review shared", zap.String("session", id))
	}
	rep := *v.(*types.ReviewReport)
	rep.Issues = append([]types.Issue(nil), rep.Issues...)
	return &rep, nil
}

// ChatSession answers with the session's contract and latest review as
// context.
func (s *ReviewService) ChatSession(ctx context.Context, id, message string) (*types.ChatReply, error) {
	sess, err := s.wizard.load(ctx, id)
	if err != nil {
		return nil, err
	}
	data := map[string]any{"contract": sess.Contract}
	if sess.LastReport != nil {
		data["review"] = sess.LastReport
	}
	return s.Chat(ctx, message, data)
}

// ClassifySession classifies the session's job description and writes the
// result into its job category.
func (s *ReviewService) ClassifySession(ctx context.Context, id string) (*SessionView, *types.ClassificationResult, error) {
	sess, err := s.wizard.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.Classify(ctx, sess.Contract.JobDescription)
	if err != nil {
		return nil, nil, err
	}
	view, err := s.wizard.ApplyClassification(ctx, id, *res)
	if err != nil {
		return nil, nil, err
	}
	return view, res, nil
}
