package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type mergeService interface {
	Preview(req dto.MergePreviewRequest) (dto.MergePreviewResponse, error)
	Commit(req dto.MergeCommitRequest) (dto.MergeCommitResponse, error)
}

// MergeHandler serves merge preview and commit endpoints.
type MergeHandler struct {
	service mergeService
}

// NewMergeHandler constructs the handler.
func NewMergeHandler(service mergeService) *MergeHandler {
	return &MergeHandler{service: service}
}

// Preview godoc
// @Summary Preview merging another document into the working one
// @Tags Merge
// @Accept json
// @Produce json
// @Param payload body dto.MergePreviewRequest true "Incoming document"
// @Success 200 {object} response.Envelope
// @Router /merge/preview [post]
func (h *MergeHandler) Preview(c *gin.Context) {
	var req dto.MergePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrLoadFailed, "incoming document could not be decoded"))
		return
	}
	resp, err := h.service.Preview(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Commit godoc
// @Summary Apply a previewed merge
// @Tags Merge
// @Accept json
// @Produce json
// @Param payload body dto.MergeCommitRequest true "Preview id"
// @Success 200 {object} response.Envelope
// @Router /merge/commit [post]
func (h *MergeHandler) Commit(c *gin.Context) {
	var req dto.MergeCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid merge commit payload"))
		return
	}
	resp, err := h.service.Commit(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
