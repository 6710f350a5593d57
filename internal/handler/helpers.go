package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/deptsched/scheduler-api/pkg/errors"
)

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}
