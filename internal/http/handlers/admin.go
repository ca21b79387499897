package handlers

import (
	"github.com/gin-gonic/gin"

	paperdomain "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/paper"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/http/response"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/services"
)

// AdminHandler serves the committee-facing endpoints. Routes using it sit
// behind the admin gate, so role checks here would be redundant; the
// evaluation service still enforces its own.
type AdminHandler struct {
	paperService      services.PaperService
	evaluationService services.EvaluationService
}

func NewAdminHandler(paperService services.PaperService, evaluationService services.EvaluationService) *AdminHandler {
	return &AdminHandler{
		paperService:      paperService,
		evaluationService: evaluationService,
	}
}

func (ah *AdminHandler) ListPapers(c *gin.Context) {
	papers, err := ah.paperService.ListAllPapers(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"papers": papers})
}

func (ah *AdminHandler) SetStatus(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		Status        string `json:"status"`
		ReviewComment string `json:"review_comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ah.paperService.SetStatus(c.Request.Context(), id, paperdomain.Status(req.Status), req.ReviewComment)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}

func (ah *AdminHandler) ResetAbstract(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ah.paperService.ResetAbstract(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}

func (ah *AdminHandler) ResetFullPaper(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ah.paperService.ResetFullPaper(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}

func (ah *AdminHandler) RecordPayment(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ah.paperService.RecordPayment(c.Request.Context(), id, req.Reference)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}

func (ah *AdminHandler) GetEvaluation(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	eval, err := ah.evaluationService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, eval)
}

func (ah *AdminHandler) SetEvaluationScore(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		Score int `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	eval, err := ah.evaluationService.SetScore(c.Request.Context(), id, req.Score)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, eval)
}

func (ah *AdminHandler) SetEvaluationComments(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	eval, err := ah.evaluationService.SetConfidentialComments(c.Request.Context(), id, req.Comments)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, eval)
}
