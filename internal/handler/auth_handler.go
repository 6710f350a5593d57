package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deptsched/scheduler-api/internal/dto"
	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
	"github.com/deptsched/scheduler-api/pkg/response"
)

type authService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler serves the admin login endpoint.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Authenticate the schedule administrator
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}
	resp, err := h.service.Login(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
