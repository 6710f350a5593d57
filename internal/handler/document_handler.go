package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/middleware"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type documentService interface {
	Export() dto.DocumentResponse
	Import(doc models.Document) (dto.ImportResult, error)
	Reset() dto.DocumentResponse
	GetOptions() models.Options
	UpdateOptions(req dto.OptionsRequest) (models.Options, error)
	GetNotes() string
	UpdateNotes(req dto.NotesRequest)
	ArchiveSave(ctx context.Context, req dto.ArchiveRequest, createdBy string) (*models.ArchiveEntry, error)
	ArchiveRestore(ctx context.Context, id string) (dto.ImportResult, error)
	ArchiveList(ctx context.Context, filter models.ArchiveFilter) ([]models.ArchiveEntry, error)
	ArchiveDelete(ctx context.Context, id string) error
}

// DocumentHandler manages whole document endpoints: export, import, reset,
// options, notes, and snapshots.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Export godoc
// @Summary Export the working document
// @Tags Document
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /document [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Export())
}

// Import godoc
// @Summary Replace the working document
// @Tags Document
// @Accept json
// @Produce json
// @Param payload body models.Document true "Document"
// @Success 200 {object} response.Envelope
// @Router /document [put]
func (h *DocumentHandler) Import(c *gin.Context) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrLoadFailed, "document could not be decoded"))
		return
	}
	result, err := h.service.Import(doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Reset godoc
// @Summary Discard the working document and start fresh
// @Tags Document
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /document/reset [post]
func (h *DocumentHandler) Reset(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Reset())
}

// GetOptions godoc
// @Summary Get document options
// @Tags Document
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /document/options [get]
func (h *DocumentHandler) GetOptions(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.GetOptions())
}

// UpdateOptions godoc
// @Summary Update document options
// @Tags Document
// @Accept json
// @Produce json
// @Param payload body dto.OptionsRequest true "Options"
// @Success 200 {object} response.Envelope
// @Router /document/options [put]
func (h *DocumentHandler) UpdateOptions(c *gin.Context) {
	var req dto.OptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid options payload"))
		return
	}
	options, err := h.service.UpdateOptions(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// GetNotes godoc
// @Summary Get schedule notes
// @Tags Document
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /document/notes [get]
func (h *DocumentHandler) GetNotes(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"notes": h.service.GetNotes()})
}

// UpdateNotes godoc
// @Summary Replace schedule notes
// @Tags Document
// @Accept json
// @Produce json
// @Param payload body dto.NotesRequest true "Notes"
// @Success 200 {object} response.Envelope
// @Router /document/notes [put]
func (h *DocumentHandler) UpdateNotes(c *gin.Context) {
	var req dto.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid notes payload"))
		return
	}
	h.service.UpdateNotes(req)
	response.JSON(c, http.StatusOK, gin.H{"notes": req.Notes})
}

// ArchiveSave godoc
// @Summary Store the working document as a snapshot
// @Tags Archive
// @Accept json
// @Produce json
// @Param payload body dto.ArchiveRequest true "Snapshot label"
// @Success 201 {object} response.Envelope
// @Router /document/archive [post]
func (h *DocumentHandler) ArchiveSave(c *gin.Context) {
	var req dto.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid archive payload"))
		return
	}
	entry, err := h.service.ArchiveSave(c.Request.Context(), req, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// ArchiveList godoc
// @Summary List stored snapshots
// @Tags Archive
// @Produce json
// @Param label query string false "Filter by label"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /document/archive [get]
func (h *DocumentHandler) ArchiveList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	entries, err := h.service.ArchiveList(c.Request.Context(), models.ArchiveFilter{
		Label:  c.Query("label"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{
		"count":       len(entries),
		"generatedAt": time.Now().UTC(),
	})
}

// ArchiveRestore godoc
// @Summary Load a snapshot into the working document
// @Tags Archive
// @Produce json
// @Param id path string true "Snapshot id"
// @Success 200 {object} response.Envelope
// @Router /document/archive/{id}/restore [post]
func (h *DocumentHandler) ArchiveRestore(c *gin.Context) {
	result, err := h.service.ArchiveRestore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ArchiveDelete godoc
// @Summary Delete a snapshot
// @Tags Archive
// @Param id path string true "Snapshot id"
// @Success 204
// @Router /document/archive/{id} [delete]
func (h *DocumentHandler) ArchiveDelete(c *gin.Context) {
	if err := h.service.ArchiveDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
