package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-contract/logic/compliance"
	"labor-contract/types"
)

type fakeModel struct {
	reply string
	err   error
	seen  []*schema.Message
}

func (f *fakeModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
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

func TestReviewDecodesFencedJSON(t *testing.T) {
	m := &fakeModel{reply: "검토 결과입니다.\n```json\n" + `{
		"riskScore": 72,
		"riskLevel": "CAUTION",
		"summary": "휴게시간 기재가 필요합니다.",
		"issues": [
			{"type": "ILLEGAL", "message": "휴게시간 부족", "suggestion": "1시간 부여", "legalReference": "근로기준법 제54조"},
			"연차 조항을 명확히 하세요"
		],
		"plainLanguageSummary": {"wage": "시급 10,030원", "workTime": "하루 8시간", "rights": "주휴일 보장"}
	}` + "\n```"}

	rec := types.NewContractRecord()
	rep := compliance.Evaluate(rec)
	got, err := Review(context.Background(), m, compliance.DefaultPolicy(), rec, rep)
	require.NoError(t, err)

	assert.Equal(t, 72, got.RiskScore)
	assert.Equal(t, types.RiskCaution, got.RiskLevel)
	require.Len(t, got.Issues, 2)
	assert.Equal(t, types.IssueIllegal, got.Issues[0].Type)
	assert.Equal(t, "근로기준법 제54조", got.Issues[0].LegalReference)
	assert.Equal(t, types.Issue{Type: types.IssueSuggestion, Message: "연차 조항을 명확히 하세요"}, got.Issues[1])
	assert.Equal(t, "주휴일 보장", got.PlainLanguageSummary.Rights)

	require.Len(t, m.seen, 2)
	assert.Contains(t, m.seen[0].Content, "10,030")
	assert.Contains(t, m.seen[0].Content, "계약 유형을 선택해 주세요.")
}

func TestReviewDegradesOnGarbage(t *testing.T) {
	m := &fakeModel{reply: "죄송합니다. 지금은 답변할 수 없습니다."}
	got, err := Review(context.Background(), m, compliance.DefaultPolicy(), types.NewContractRecord(), compliance.Report{})
	require.NoError(t, err)
	assert.Equal(t, DefaultReview(), *got)
}

func TestReviewModelFailureIsAnError(t *testing.T) {
	m := &fakeModel{err: errors.New("connection refused")}
	_, err := Review(context.Background(), m, compliance.DefaultPolicy(), types.NewContractRecord(), compliance.Report{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestCoerceReview(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScore int
		wantLevel types.RiskLevel
	}{
		{"score above range", `{"riskScore": 140, "riskLevel": "SAFE"}`, 100, types.RiskSafe},
		{"negative score", `{"riskScore": -3}`, 0, types.RiskDanger},
		{"score as string", `{"riskScore": "85"}`, 85, types.RiskSafe},
		{"level alias", `{"riskScore": 60, "riskLevel": "risky"}`, 60, types.RiskDanger},
		{"moderate alias", `{"riskScore": 60, "riskLevel": "MODERATE"}`, 60, types.RiskCaution},
		{"unknown level falls back to score", `{"riskScore": 55, "riskLevel": "OK"}`, 55, types.RiskCaution},
		{"nothing usable", `{"foo": 1}`, 0, types.RiskCaution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceReview(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.wantScore, got.RiskScore)
			assert.Equal(t, tt.wantLevel, got.RiskLevel)
			assert.NotNil(t, got.Issues)
		})
	}
}

func TestCoerceReviewDropsEmptyIssues(t *testing.T) {
	got, ok := coerceReview(`{"issues": ["", {"type": "WHATEVER", "message": "m"}, {}, 3]}`)
	require.True(t, ok)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, types.IssueSuggestion, got.Issues[0].Type)
}

func TestChat(t *testing.T) {
	m := &fakeModel{reply: "  주휴수당은 주 15시간 이상 근무하면 받을 수 있습니다.\n"}
	got, err := Chat(context.Background(), m, "주휴수당이 뭔가요?", json.RawMessage(`{"riskScore": 80}`))
	require.NoError(t, err)
	assert.Equal(t, "주휴수당은 주 15시간 이상 근무하면 받을 수 있습니다.", got.Reply)
	assert.Contains(t, m.seen[0].Content, `"riskScore": 80`)
	assert.Equal(t, "주휴수당이 뭔가요?", m.seen[1].Content)

	_, err = Chat(context.Background(), m, "질문", nil)
	require.NoError(t, err)
	assert.Contains(t, m.seen[0].Content, "(없음)")

	_, err = Chat(context.Background(), m, "질문", &types.ReviewReport{Summary: "요약"})
	require.NoError(t, err)
	assert.Contains(t, m.seen[0].Content, "요약")
}

func TestClassify(t *testing.T) {
	m := &fakeModel{reply: `{"isSimpleLabor": true, "categoryName": "95220 주방 보조원", "reason": "주방 보조 업무"}`}
	got, err := Classify(context.Background(), m, "식당 주방에서 설거지와 재료 손질", nil)
	require.NoError(t, err)
	assert.True(t, got.IsSimpleLabor)
	require.NotNil(t, got.CategoryName)
	assert.Equal(t, "95220 주방 보조원", *got.CategoryName)
	assert.Contains(t, m.seen[0].Content, "99992 대여 제품 방문 점검원", "full guide without candidates")

	_, err = Classify(context.Background(), m, "설거지", []types.Occupation{
		{Code: "95220", Name: "주방 보조원", Group: "95", GroupName: "가사‧음식 및 판매 관련 단순 노무직"},
	})
	require.NoError(t, err)
	assert.Contains(t, m.seen[0].Content, "- 95220 주방 보조원")
	assert.NotContains(t, m.seen[0].Content, "99992")
}

func TestClassifyLenientValues(t *testing.T) {
	m := &fakeModel{reply: `{"isSimpleLabor": "false", "categoryName": "91001 건설 단순 종사원", "reason": "사무 업무"}`}
	got, err := Classify(context.Background(), m, "회계 장부 작성", nil)
	require.NoError(t, err)
	assert.False(t, got.IsSimpleLabor)
	assert.Nil(t, got.CategoryName, "no category without simple labor")
}

func TestClassifyUnreadableReplyIsAnError(t *testing.T) {
	m := &fakeModel{reply: "죄송합니다, 지금은 답변할 수 없습니다."}
	got, err := Classify(context.Background(), m, "식당 주방 설거지", nil)
	assert.ErrorIs(t, err, ErrUnreadableOutput)
	assert.Nil(t, got)
}

func TestApplyClassification(t *testing.T) {
	rec := types.NewContractRecord()
	name := "92230 음식 배달원"
	ApplyClassification(&rec, types.ClassificationResult{IsSimpleLabor: true, CategoryName: &name, Reason: "배달 업무"})
	assert.Equal(t, types.JobSimpleLabor, rec.JobCategory)
	assert.Equal(t, "92230 음식 배달원: 배달 업무", rec.JobCategoryReason)

	ApplyClassification(&rec, types.ClassificationResult{Reason: "사무 업무"})
	assert.Equal(t, types.JobOffice, rec.JobCategory)
	assert.Equal(t, "사무 업무", rec.JobCategoryReason)
}
