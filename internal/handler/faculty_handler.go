package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type facultyService interface {
	List() []models.Professor
	Get(id int) (models.Professor, error)
	Create(req dto.CreateProfessorRequest) (models.Professor, error)
	Update(id int, req dto.UpdateProfessorRequest) (models.Professor, error)
	Delete(id int) error
}

// FacultyHandler manages faculty endpoints.
type FacultyHandler struct {
	service facultyService
}

// NewFacultyHandler constructs the handler.
func NewFacultyHandler(service facultyService) *FacultyHandler {
	return &FacultyHandler{service: service}
}

// List godoc
// @Summary List faculty
// @Tags Faculty
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Get godoc
// @Summary Get a professor
// @Tags Faculty
// @Produce json
// @Param id path int true "Professor id"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	prof, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prof)
}

// Create godoc
// @Summary Create a professor
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body dto.CreateProfessorRequest true "Professor"
// @Success 201 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid professor payload"))
		return
	}
	prof, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prof)
}

// Update godoc
// @Summary Update a professor
// @Tags Faculty
// @Accept json
// @Produce json
// @Param id path int true "Professor id"
// @Param payload body dto.UpdateProfessorRequest true "Professor"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid professor payload"))
		return
	}
	prof, err := h.service.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prof)
}

// Delete godoc
// @Summary Delete a professor, cascading through class rosters
// @Tags Faculty
// @Param id path int true "Professor id"
// @Success 204
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
