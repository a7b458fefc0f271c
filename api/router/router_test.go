package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-contract/api/handler"
	"labor-contract/logic/compliance"
	"labor-contract/logic/wizard"
	"labor-contract/service"
	"labor-contract/storage/memory"
	"labor-contract/vars"
)

type stubModel struct{ reply string }

func (m stubModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m stubModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, _ := m.Generate(ctx, in, opts...)
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(reply string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	w := service.NewWizardService(memory.NewSessionStore(), wizard.NewMachine(compliance.DefaultPolicy()))
	r := service.NewReviewService(stubModel{reply: reply}, vars.LLMConfig{}, w, nil)
	return NewEngine(handler.NewContractHandler(w, r, nil), handler.NewSessionHandler(w, r))
}

func doRaw(e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func do(t *testing.T, e *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	rec := doRaw(e, method, path, body)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	status, env := do(t, newTestEngine(""), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)
}

func TestSessionFlow(t *testing.T) {
	e := newTestEngine("")

	status, env := do(t, e, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusOK, status)
	var sess struct {
		ID       string `json:"id"`
		StepName string `json:"stepName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.Equal(t, "TYPE", sess.StepName)
	base := "/api/v1/sessions/" + sess.ID

	// 门槛未满足
	status, env = do(t, e, http.MethodPost, base+"/actions", `{"type":"NEXT_STEP"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, -1, env.Code)
	assert.Contains(t, string(env.Data), compliance.CodeContractTypeRequired)

	// 旧前端使用 payload 字段
	status, env = do(t, e, http.MethodPost, base+"/actions", `{"type":"SET_FIELD","field":"contractType","payload":"PART_TIME"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code, env.Msg)

	status, env = do(t, e, http.MethodPost, base+"/actions", `{"type":"NEXT_STEP"}`)
	require.Equal(t, 0, env.Code, env.Msg)
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.Equal(t, "BASIC_INFO", sess.StepName)

	status, _ = do(t, e, http.MethodPost, base+"/actions", `{"type":"JUMP"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, e, http.MethodPost, base+"/actions", `{"type":"SET_FIELD","field":"salary","value":1}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, e, http.MethodPost, base+"/review", "")
	assert.Equal(t, http.StatusConflict, status)

	status, env = do(t, e, http.MethodGet, base+"/compliance", "")
	assert.Equal(t, 0, env.Code)
	assert.Contains(t, string(env.Data), compliance.CodeStartDateRequired)

	status, _ = do(t, e, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusOK, status)
	status, env = do(t, e, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, -1, env.Code)
}

func TestStatelessReview(t *testing.T) {
	e := newTestEngine("```json\n{\"riskScore\": 40, \"riskLevel\": \"DANGER\", \"summary\": \"최저임금 미달\"}\n```")
	res := doRaw(e, http.MethodPost, "/api/review", `{"contractData":{"contractType":"PART_TIME","wage":{"type":"HOURLY","amount":"9,000"}}}`)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	// 旧前端直接读取顶层字段
	var rep struct {
		RiskScore int    `json:"riskScore"`
		RiskLevel string `json:"riskLevel"`
		Issues    []any  `json:"issues"`
		Code      *int   `json:"code"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &rep))
	assert.Equal(t, 40, rep.RiskScore)
	assert.Equal(t, "DANGER", rep.RiskLevel)
	assert.NotNil(t, rep.Issues)
	assert.Nil(t, rep.Code, "no envelope")

	res = doRaw(e, http.MethodPost, "/api/review", `{"contractData":{"contractType":"INTERN"}}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), `"error"`)
}

func TestStatelessEvaluate(t *testing.T) {
	e := newTestEngine("")
	status, env := do(t, e, http.MethodPost, "/api/compliance/evaluate", `{"contractData":{
		"contractType":"MINOR",
		"workSchedule":{"startTime":"09:00","endTime":"18:00","breakStartTime":"12:00","breakEndTime":"13:00","workingDays":["Mon","Tue"]},
		"wage":{"type":"HOURLY","amount":10000}
	}}`)
	require.Equal(t, http.StatusOK, status)

	var got service.Evaluation
	require.NoError(t, json.Unmarshal(env.Data, &got))
	rep := got.Compliance
	assert.Equal(t, 480, rep.NetMinutes)
	codes := map[string]bool{}
	for _, v := range rep.Violations {
		codes[v.Code] = true
	}
	assert.True(t, codes[compliance.CodeMinorDailyCapExceeded])
	assert.True(t, codes[compliance.CodeWageBelowMinimum])
}

func TestChatAndClassify(t *testing.T) {
	e := newTestEngine(`{"isSimpleLabor": false, "reason": "사무 업무"}`)

	res := doRaw(e, http.MethodPost, "/api/chat", `{"message":"연차는요?","context":{"riskScore":80}}`)
	require.Equal(t, http.StatusOK, res.Code)
	var reply struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &reply))
	assert.NotEmpty(t, reply.Reply)

	res = doRaw(e, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = doRaw(e, http.MethodPost, "/api/classify-job", `{"jobDescription":"회계 장부 정리"}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"isSimpleLabor": false, "categoryName": null, "reason": "사무 업무"}`, res.Body.String())

	res = doRaw(e, http.MethodPost, "/api/classify-job", `{"jobDescription":"   "}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	status, _ := do(t, e, http.MethodGet, "/api/v1/catalog/search?q=설거지", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatelessEvaluateReturnsCorrections(t *testing.T) {
	e := newTestEngine("")
	_, env := do(t, e, http.MethodPost, "/api/compliance/evaluate", `{"contractData":{
		"contractType":"FIXED_TERM","jobCategory":"SIMPLE_LABOR",
		"startWorkDate":"2026-03-02","endWorkDate":"2028-03-01",
		"wage":{"type":"HOURLY","amount":10030,"hasProbation":true,"probationWagePercent":50}
	}}`)
	require.Equal(t, 0, env.Code, env.Msg)

	var got service.Evaluation
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 100, got.Contract.Wage.ProbationWagePercent)
	assert.NotEmpty(t, got.Corrections)
}

func TestUnreadableClassification(t *testing.T) {
	e := newTestEngine("죄송합니다, 지금은 답변할 수 없습니다.")

	res := doRaw(e, http.MethodPost, "/api/classify-job", `{"jobDescription":"식당 주방 설거지"}`)
	assert.Equal(t, http.StatusBadGateway, res.Code)

	_, env := do(t, e, http.MethodPost, "/api/v1/sessions", "")
	var sess struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	base := "/api/v1/sessions/" + sess.ID
	_, env = do(t, e, http.MethodPost, base+"/actions", `{"type":"SET_FIELD","field":"jobDescription","value":"식당 주방 설거지"}`)
	require.Equal(t, 0, env.Code, env.Msg)
	_, env = do(t, e, http.MethodPost, base+"/actions", `{"type":"SET_FIELD","field":"jobCategory","value":"SIMPLE_LABOR"}`)
	require.Equal(t, 0, env.Code, env.Msg)

	status, env := do(t, e, http.MethodPost, base+"/classify-job", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, -1, env.Code)

	_, env = do(t, e, http.MethodGet, base, "")
	assert.Contains(t, string(env.Data), `"jobCategory":"SIMPLE_LABOR"`)
}
