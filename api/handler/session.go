package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labor-contract/api/response"
	"labor-contract/logic/wizard"
	"labor-contract/service"
	"labor-contract/types"
)

// SessionHandler serves the server-side wizard under /api/v1/sessions.
type SessionHandler struct {
	wizardSvc *service.WizardService
	reviewSvc *service.ReviewService
}

func NewSessionHandler(wizardSvc *service.WizardService, reviewSvc *service.ReviewService) *SessionHandler {
	return &SessionHandler{wizardSvc: wizardSvc, reviewSvc: reviewSvc}
}

func (h *SessionHandler) Create(c *gin.Context) {
	v, err := h.wizardSvc.Create(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, v)
}

func (h *SessionHandler) Get(c *gin.Context) {
	v, err := h.wizardSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, v)
}

// Dispatch POST /api/v1/sessions/:id/actions
func (h *SessionHandler) Dispatch(c *gin.Context) {
	var req types.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "action type is required")
		return
	}
	typ, err := wizard.ParseActionType(req.Type)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	value := req.Value
	if len(value) == 0 {
		value = req.Payload
	}

	v, err := h.wizardSvc.Dispatch(c.Request.Context(), c.Param("id"), wizard.Action{
		Type:    typ,
		Field:   req.Field,
		Section: req.Section,
		Value:   value,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, v)
}

func (h *SessionHandler) Compliance(c *gin.Context) {
	rep, err := h.wizardSvc.Compliance(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, rep)
}

func (h *SessionHandler) ClassifyJob(c *gin.Context) {
	v, res, err := h.reviewSvc.ClassifySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"session": v, "classification": res})
}

func (h *SessionHandler) Review(c *gin.Context) {
	rep, err := h.reviewSvc.ReviewSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, rep)
}

func (h *SessionHandler) Chat(c *gin.Context) {
	var req types.SessionChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "message is required")
		return
	}
	reply, err := h.reviewSvc.ChatSession(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, reply)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.wizardSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
