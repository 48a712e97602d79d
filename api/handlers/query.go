package handlers

import (
	"net/http"

	"wholesaler/wholesaler_catalog_service/models"

	"github.com/gin-gonic/gin"
)

// RunQuery compiles and executes a declarative query payload.
func (h *Handler) RunQuery(c *gin.Context) {
	var payload models.QueryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    "InvalidArgument",
			Message: err.Error(),
		})
		return
	}

	result, err := h.strg.Query().Run(c.Request.Context(), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
