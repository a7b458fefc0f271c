package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labor-contract/api/response"
	"labor-contract/logger"
	"labor-contract/logic/wizard"
	"labor-contract/service"
	"labor-contract/types"
)

// ContractHandler serves the stateless endpoints the single-page front end
// calls with the whole contract in each request. Review, chat and
// classification answer with the bare object the front end reads, not the
// envelope.
type ContractHandler struct {
	wizardSvc  *service.WizardService
	reviewSvc  *service.ReviewService
	catalogSvc *service.CatalogService
}

func NewContractHandler(wizardSvc *service.WizardService, reviewSvc *service.ReviewService, catalogSvc *service.CatalogService) *ContractHandler {
	return &ContractHandler{
		wizardSvc:  wizardSvc,
		reviewSvc:  reviewSvc,
		catalogSvc: catalogSvc,
	}
}

// Review POST /api/review
func (h *ContractHandler) Review(c *gin.Context) {
	req := types.ReviewRequest{ContractData: types.NewContractRecord()}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RawError(c, http.StatusBadRequest, "invalid contractData: "+err.Error())
		return
	}
	rep, err := h.reviewSvc.Review(c.Request.Context(), req.ContractData)
	if err != nil {
		failRaw(c, err)
		return
	}
	response.Raw(c, rep)
}

// Chat POST /api/chat
func (h *ContractHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RawError(c, http.StatusBadRequest, "message is required")
		return
	}
	reply, err := h.reviewSvc.Chat(c.Request.Context(), req.Message, req.Context)
	if err != nil {
		failRaw(c, err)
		return
	}
	response.Raw(c, reply)
}

// ClassifyJob POST /api/classify-job
func (h *ContractHandler) ClassifyJob(c *gin.Context) {
	var req types.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RawError(c, http.StatusBadRequest, "jobDescription is required")
		return
	}
	res, err := h.reviewSvc.Classify(c.Request.Context(), req.JobDescription)
	if err != nil {
		failRaw(c, err)
		return
	}
	response.Raw(c, res)
}

// Evaluate POST /api/compliance/evaluate
func (h *ContractHandler) Evaluate(c *gin.Context) {
	req := types.ReviewRequest{ContractData: types.NewContractRecord()}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contractData: "+err.Error())
		return
	}
	response.Success(c, h.wizardSvc.Evaluate(req.ContractData))
}

// SearchOccupations GET /api/v1/catalog/search?q=
func (h *ContractHandler) SearchOccupations(c *gin.Context) {
	if h.catalogSvc == nil {
		response.Error(c, http.StatusNotFound, "occupation catalog is disabled")
		return
	}
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required")
		return
	}
	got, err := h.catalogSvc.Search(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, got)
}

func Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// fail maps service errors to the envelope. Request problems get a 4xx
// status; everything else is a code -1 failure the client may retry.
func fail(c *gin.Context, err error) {
	var gate *wizard.GateError
	switch {
	case errors.As(err, &gate):
		response.FailWithData(c, gate.Error(), gin.H{
			"step":       gate.Step.String(),
			"violations": gate.Violations,
		})
	case errors.Is(err, service.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrUnknownAction),
		errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrUnknownSection),
		errors.Is(err, wizard.ErrInvalidValue),
		errors.Is(err, service.ErrNoJobDescription):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrFinalStep),
		errors.Is(err, service.ErrNotReviewable):
		response.Error(c, http.StatusConflict, err.Error())
	default:
		logger.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.Fail(c, err.Error())
	}
}

// failRaw is fail for the unenveloped endpoints. Model failures, including
// an unreadable classification, are 502 so the front end can retry.
func failRaw(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoJobDescription):
		response.RawError(c, http.StatusBadRequest, err.Error())
	default:
		logger.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.RawError(c, http.StatusBadGateway, err.Error())
	}
}
