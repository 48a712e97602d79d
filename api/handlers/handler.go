package handlers

import (
	"net/http"

	"wholesaler/wholesaler_catalog_service/config"
	"wholesaler/wholesaler_catalog_service/models"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

type Handler struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func New(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *Handler {
	return &Handler{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

type errorResponse struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Constraint string `json:"constraint,omitempty"`
}

// handleError translates typed core errors into HTTP responses. Raw database
// errors never reach the wire.
func (h *Handler) handleError(c *gin.Context, err error) {
	var compileErr *models.CompileError
	if errors.As(err, &compileErr) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    string(compileErr.Kind),
			Message: compileErr.Error(),
		})
		return
	}

	var storeErr *models.StoreError
	if errors.As(err, &storeErr) {
		status := http.StatusInternalServerError
		switch storeErr.Kind {
		case models.ErrNotFound:
			status = http.StatusNotFound
		case models.ErrForeignKeyViolation, models.ErrConcurrentModification:
			status = http.StatusConflict
		case models.ErrCheckViolation:
			status = http.StatusUnprocessableEntity
		}

		c.JSON(status, errorResponse{
			Kind:       string(storeErr.Kind),
			Message:    storeErr.Message,
			Constraint: storeErr.Constraint,
		})
		return
	}

	h.log.Error("unhandled error", logger.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{
		Kind:    string(models.ErrUnknown),
		Message: err.Error(),
	})
}

// deleteRequest reads :id and ?cascade= from the request.
func (h *Handler) deleteRequest(c *gin.Context) (*models.DeleteRequest, bool) {
	id := cast.ToInt64(c.Param("id"))
	if id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    "InvalidArgument",
			Message: "id must be a positive integer",
		})
		return nil, false
	}

	return &models.DeleteRequest{
		ID:      id,
		Cascade: cast.ToBool(c.Query("cascade")),
	}, true
}

func (h *Handler) entityID(c *gin.Context) (int64, bool) {
	id := cast.ToInt64(c.Param("id"))
	if id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    "InvalidArgument",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}
