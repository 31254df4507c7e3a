// Package handlers implements the read-mostly HTTP API over the forecast
// manager and watchlist tracker.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, common.NewSuccessResponse(data))
}

// respondError maps the error's code onto an HTTP status and renders the
// standard error envelope.
func respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatusForCode(code)
	c.JSON(status, common.NewErrorResponse(code.String(), err.Error()))
}

// nameRequest is the body for add-by-name operations on the flat lists.
type nameRequest struct {
	Name string `json:"name" binding:"required"`
}
