package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type timeSlotService interface {
	List() []models.TimeSlot
	Create(req dto.TimeSlotRequest) (models.TimeSlot, error)
	Delete(req dto.TimeSlotRequest) error
}

// TimeSlotHandler manages standard time slot endpoints.
type TimeSlotHandler struct {
	service timeSlotService
}

// NewTimeSlotHandler constructs the handler.
func NewTimeSlotHandler(service timeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{service: service}
}

// List godoc
// @Summary List standard time slots
// @Tags TimeSlots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeslots [get]
func (h *TimeSlotHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Create godoc
// @Summary Add a standard time slot
// @Tags TimeSlots
// @Accept json
// @Produce json
// @Param payload body dto.TimeSlotRequest true "Time slot"
// @Success 201 {object} response.Envelope
// @Router /timeslots [post]
func (h *TimeSlotHandler) Create(c *gin.Context) {
	var req dto.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid time slot payload"))
		return
	}
	slot, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Delete godoc
// @Summary Remove a standard time slot
// @Tags TimeSlots
// @Accept json
// @Param payload body dto.TimeSlotRequest true "Time slot"
// @Success 204
// @Router /timeslots [delete]
func (h *TimeSlotHandler) Delete(c *gin.Context) {
	var req dto.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid time slot payload"))
		return
	}
	if err := h.service.Delete(req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
