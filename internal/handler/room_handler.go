package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	"github.com/deptsched/scheduler-api/internal/models"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type roomService interface {
	List() []models.Room
	Get(id int) (models.Room, error)
	Create(req dto.CreateRoomRequest) (models.Room, error)
	Update(id int, req dto.UpdateRoomRequest) (models.Room, error)
	Delete(id int) error
}

// RoomHandler manages room endpoints.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(service roomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Get godoc
// @Summary Get a room
// @Tags Rooms
// @Produce json
// @Param id path int true "Room id"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	room, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Create godoc
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoomRequest true "Room"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid room payload"))
		return
	}
	room, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path int true "Room id"
// @Param payload body dto.UpdateRoomRequest true "Room"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid room payload"))
		return
	}
	room, err := h.service.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Delete godoc
// @Summary Delete a room, stripping its placements from the schedule
// @Tags Rooms
// @Param id path int true "Room id"
// @Success 204
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
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
