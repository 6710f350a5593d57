package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type conflictService interface {
	Check(req dto.ConflictCheckRequest) (dto.ConflictCheckResponse, error)
	Scan(ctx context.Context) (dto.ConflictScanResponse, error)
}

type workloadService interface {
	ForProfessor(id int) (dto.ProfessorWorkloadResponse, error)
	All(ctx context.Context) ([]dto.ProfessorWorkloadResponse, error)
}

// ConflictHandler serves conflict queries and workload reports.
type ConflictHandler struct {
	conflicts conflictService
	workloads workloadService
}

// NewConflictHandler constructs the handler.
func NewConflictHandler(conflicts conflictService, workloads workloadService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts, workloads: workloads}
}

// Check godoc
// @Summary Check proposed placements for conflicts
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body dto.ConflictCheckRequest true "Proposal"
// @Success 200 {object} response.Envelope
// @Router /conflicts/check [post]
func (h *ConflictHandler) Check(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid conflict check payload"))
		return
	}
	resp, err := h.conflicts.Check(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Scan godoc
// @Summary Scan the whole schedule for double bookings
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts/scan [get]
func (h *ConflictHandler) Scan(c *gin.Context) {
	resp, err := h.conflicts.Scan(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Workloads godoc
// @Summary List every professor's teaching load
// @Tags Workloads
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workloads [get]
func (h *ConflictHandler) Workloads(c *gin.Context) {
	resp, err := h.workloads.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Workload godoc
// @Summary Get one professor's teaching load
// @Tags Workloads
// @Produce json
// @Param id path int true "Professor id"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id}/workload [get]
func (h *ConflictHandler) Workload(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.workloads.ForProfessor(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
