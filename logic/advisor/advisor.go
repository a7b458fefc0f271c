package advisor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"labor-contract/logger"
	"labor-contract/logic/compliance"
	"labor-contract/types"
	"labor-contract/vars"
)

// ErrUnreadableOutput is returned when a model reply that must carry a
// decision has no decodable JSON object.
var ErrUnreadableOutput = errors.New("model output is not readable JSON")

var (
	reviewTmpl   = template.Must(template.New("review").Parse(vars.REVIEW))
	chatTmpl     = template.Must(template.New("chat").Parse(vars.CHAT))
	classifyTmpl = template.Must(template.New("classify").Parse(vars.CLASSIFY))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// Review asks the model for a legality review of rec. The rule engine's
// findings are given to the model as context. Only a failed model call is an
// error; unusable output degrades to DefaultReview.
func Review(ctx context.Context, m model.BaseChatModel, policy compliance.Policy, rec types.ContractRecord, report compliance.Report) (*types.ReviewReport, error) {
	contract, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode contract: %w", err)
	}
	prompt, err := render(reviewTmpl, map[string]any{
		"CurrentDate":    time.Now().In(types.KST).Format("2006-01-02"),
		"MinimumWage":    compliance.FormatAmount(types.Amount(policy.MinimumWage)),
		"Contract":       string(contract),
		"NetDuration":    report.NetDuration,
		"WeeklyDuration": compliance.FormatDuration(report.WeeklyMinutes),
		"Violations":     report.Violations,
	})
	if err != nil {
		return nil, err
	}

	resp, err := m.Generate(ctx, []*schema.Message{
		schema.SystemMessage(prompt),
		schema.UserMessage("위 근로계약서를 검토해 주세요."),
	})
	if err != nil {
		return nil, fmt.Errorf("review generate: %w", err)
	}

	out, ok := coerceReview(resp.Content)
	if !ok {
		logger.L().Warn("review output is not JSON, using default report",
			zap.Int("length", len(resp.Content)))
	}
	return &out, nil
}

// Chat answers a free-form question. contextData is whatever the caller
// has: a contract, a review report, or nothing.
func Chat(ctx context.Context, m model.BaseChatModel, message string, contextData any) (*types.ChatReply, error) {
	ctxText := "(없음)"
	switch c := contextData.(type) {
	case nil:
	case json.RawMessage:
		if s := strings.TrimSpace(string(c)); s != "" && s != "null" {
			ctxText = s
		}
	case string:
		if strings.TrimSpace(c) != "" {
			ctxText = c
		}
	default:
		b, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode chat context: %w", err)
		}
		ctxText = string(b)
	}

	prompt, err := render(chatTmpl, map[string]string{"Context": ctxText})
	if err != nil {
		return nil, err
	}
	resp, err := m.Generate(ctx, []*schema.Message{
		schema.SystemMessage(prompt),
		schema.UserMessage(message),
	})
	if err != nil {
		return nil, fmt.Errorf("chat generate: %w", err)
	}
	return &types.ChatReply{Reply: strings.TrimSpace(resp.Content)}, nil
}

// Classify decides whether a job description is simple labor. With
// candidates from the catalog search only those are shown to the model;
// otherwise the whole KSCO group 9 table is. A reply without a JSON object
// is ErrUnreadableOutput: a guessed category would overwrite the user's.
func Classify(ctx context.Context, m model.BaseChatModel, jobDescription string, candidates []types.Occupation) (*types.ClassificationResult, error) {
	guide := vars.KSCO_GUIDE
	if len(candidates) > 0 {
		var sb strings.Builder
		for _, c := range candidates {
			fmt.Fprintf(&sb, "- %s %s (%s. %s)\n", c.Code, c.Name, c.Group, c.GroupName)
		}
		guide = sb.String()
	}

	prompt, err := render(classifyTmpl, map[string]string{"Guide": guide})
	if err != nil {
		return nil, err
	}
	resp, err := m.Generate(ctx, []*schema.Message{
		schema.SystemMessage(prompt),
		schema.UserMessage(jobDescription),
	})
	if err != nil {
		return nil, fmt.Errorf("classify generate: %w", err)
	}

	out, ok := coerceClassification(resp.Content)
	if !ok {
		logger.L().Warn("classification output is not JSON",
			zap.String("job", jobDescription),
			zap.Int("length", len(resp.Content)))
		return nil, fmt.Errorf("classify: %w", ErrUnreadableOutput)
	}
	return &out, nil
}

// ApplyClassification copies a classification onto the record's category.
func ApplyClassification(rec *types.ContractRecord, res types.ClassificationResult) {
	if res.IsSimpleLabor {
		rec.JobCategory = types.JobSimpleLabor
	} else {
		rec.JobCategory = types.JobOffice
	}
	reason := res.Reason
	if res.CategoryName != nil {
		reason = fmt.Sprintf("%s: %s", *res.CategoryName, res.Reason)
	}
	rec.JobCategoryReason = strings.TrimSpace(reason)
}
