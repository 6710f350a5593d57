package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type scheduleItemService interface {
	List(filter dto.ScheduleFilter) []dto.ScheduleItemResponse
	Get(id int) (dto.ScheduleItemResponse, error)
	Create(req dto.CreateScheduleItemRequest) (dto.ScheduleItemResponse, error)
	Update(id int, req dto.UpdateScheduleItemRequest) (dto.ScheduleItemResponse, error)
	Delete(id int) error
	AddPlacement(itemID int, req dto.PlacementRequest) (dto.ScheduleItemResponse, error)
	SetPlacements(itemID int, reqs []dto.PlacementRequest) (dto.ScheduleItemResponse, error)
	ClearPlacements(itemID int) (dto.ScheduleItemResponse, error)
	AddProfessor(itemID int, req dto.RosterRequest) (dto.ScheduleItemResponse, error)
	RemoveProfessor(itemID int, req dto.RosterRequest) (dto.ScheduleItemResponse, error)
	SetTentative(itemID int, req dto.TentativeRequest) (dto.ScheduleItemResponse, error)
	Link(itemID int, req dto.LinkRequest) (dto.ScheduleItemResponse, error)
	Unlink(itemID int, req dto.LinkRequest) (dto.ScheduleItemResponse, error)
	NextSection(courseID int) string
}

// ScheduleHandler manages schedule item endpoints.
type ScheduleHandler struct {
	service scheduleItemService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service scheduleItemService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// List godoc
// @Summary List schedule items
// @Tags Schedule
// @Produce json
// @Param courseId query int false "Only sections of this course"
// @Param professorId query int false "Only sections taught by this professor"
// @Param roomId query int false "Only sections placed in this room"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	courseID, _ := strconv.Atoi(c.Query("courseId"))
	professorID, _ := strconv.Atoi(c.Query("professorId"))
	roomID, _ := strconv.Atoi(c.Query("roomId"))
	response.JSON(c, http.StatusOK, h.service.List(dto.ScheduleFilter{
		CourseID:    courseID,
		ProfessorID: professorID,
		RoomID:      roomID,
	}))
}

// Get godoc
// @Summary Get a schedule item
// @Tags Schedule
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create a section of a course
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.CreateScheduleItemRequest true "Section"
// @Success 201 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid schedule item payload"))
		return
	}
	item, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a schedule item
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.UpdateScheduleItemRequest true "Section"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid schedule item payload"))
		return
	}
	item, err := h.service.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a schedule item
// @Tags Schedule
// @Param id path int true "Item id"
// @Success 204
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
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

// AddPlacement godoc
// @Summary Assign a room and time to a section
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.PlacementRequest true "Placement"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/placements [post]
func (h *ScheduleHandler) AddPlacement(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid placement payload"))
		return
	}
	item, err := h.service.AddPlacement(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// SetPlacements godoc
// @Summary Replace every room and time assignment on a section
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body []dto.PlacementRequest true "Placements"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/placements [put]
func (h *ScheduleHandler) SetPlacements(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var reqs []dto.PlacementRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid placement payload"))
		return
	}
	item, err := h.service.SetPlacements(id, reqs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// ClearPlacements godoc
// @Summary Unschedule a section
// @Tags Schedule
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/placements [delete]
func (h *ScheduleHandler) ClearPlacements(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.ClearPlacements(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// AddProfessor godoc
// @Summary Add a co-instructor to a section
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.RosterRequest true "Instructor"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/professors [post]
func (h *ScheduleHandler) AddProfessor(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid roster payload"))
		return
	}
	item, err := h.service.AddProfessor(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// RemoveProfessor godoc
// @Summary Remove a co-instructor from a section
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.RosterRequest true "Instructor"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/professors [delete]
func (h *ScheduleHandler) RemoveProfessor(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid roster payload"))
		return
	}
	item, err := h.service.RemoveProfessor(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// SetTentative godoc
// @Summary Flip the tentative flag on a section
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.TentativeRequest true "Flag"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/tentative [put]
func (h *ScheduleHandler) SetTentative(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.TentativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid tentative payload"))
		return
	}
	item, err := h.service.SetTentative(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Link godoc
// @Summary Link a section to another
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.LinkRequest true "Target"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/links [post]
func (h *ScheduleHandler) Link(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid link payload"))
		return
	}
	item, err := h.service.Link(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Unlink godoc
// @Summary Remove a link between sections
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param payload body dto.LinkRequest true "Target"
// @Success 200 {object} response.Envelope
// @Router /schedule/{id}/links [delete]
func (h *ScheduleHandler) Unlink(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid link payload"))
		return
	}
	item, err := h.service.Unlink(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// NextSection godoc
// @Summary Preview the next free section number for a course
// @Tags Schedule
// @Produce json
// @Param courseId path int true "Course id"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/next-section [get]
func (h *ScheduleHandler) NextSection(c *gin.Context) {
	courseID, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"section": h.service.NextSection(courseID)})
}
