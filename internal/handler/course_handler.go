package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type courseService interface {
	List() []models.Course
	Get(id int) (models.Course, error)
	Create(req dto.CreateCourseRequest) (models.Course, error)
	Update(id int, req dto.UpdateCourseRequest) (models.Course, error)
	Delete(id int) error
}

// CourseHandler manages course catalog endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Get godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path int true "Course id"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourseRequest true "Course"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid course payload"))
		return
	}
	course, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course id"
// @Param payload body dto.UpdateCourseRequest true "Course"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid course payload"))
		return
	}
	course, err := h.service.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete godoc
// @Summary Delete a course and all of its sections
// @Tags Courses
// @Param id path int true "Course id"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
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
