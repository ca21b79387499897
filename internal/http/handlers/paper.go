package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paperdomain "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/paper"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/http/response"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/services"
)

// PaperHandler serves the author-facing paper endpoints. Authorization is
// done in the service layer against the request identity; the handler only
// shapes requests and responses.
type PaperHandler struct {
	paperService services.PaperService
}

func NewPaperHandler(paperService services.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

func paperIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid paper id %q", c.Param("id"))
	}
	return id, nil
}

func (ph *PaperHandler) SubmitAbstract(c *gin.Context) {
	var req struct {
		Title            string `json:"title"`
		Authors          string `json:"authors"`
		Theme            string `json:"theme"`
		PresentationMode string `json:"presentation_mode"`
		FilePath         string `json:"file_path"`
		FileName         string `json:"file_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ph.paperService.SubmitAbstract(c.Request.Context(), services.SubmitAbstractRequest{
		Title:            req.Title,
		Authors:          req.Authors,
		Theme:            req.Theme,
		PresentationMode: req.PresentationMode,
		FilePath:         req.FilePath,
		FileName:         req.FileName,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, p)
}

func (ph *PaperHandler) ListOwn(c *gin.Context) {
	papers, err := ph.paperService.ListOwnPapers(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"papers": papers})
}

func (ph *PaperHandler) Get(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ph.paperService.GetPaper(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// History returns both version ledgers for a paper, split by stream.
func (ph *PaperHandler) History(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ph.paperService.GetPaper(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"abstract":   p.StreamHistory(paperdomain.StreamAbstract),
		"full_paper": p.StreamHistory(paperdomain.StreamFullPaper),
	})
}

func (ph *PaperHandler) ResubmitAbstract(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		FilePath string `json:"file_path"`
		FileName string `json:"file_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ph.paperService.ResubmitAbstract(c.Request.Context(), id, req.FilePath, req.FileName)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}

func (ph *PaperHandler) SubmitFullPaper(c *gin.Context) {
	id, err := paperIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	var req struct {
		FilePath string `json:"file_path"`
		FileName string `json:"file_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	p, err := ph.paperService.SubmitFullPaper(c.Request.Context(), id, req.FilePath, req.FileName)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, p)
}
