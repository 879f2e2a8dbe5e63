package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-manager/models"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondDomainError maps the domain error taxonomy to HTTP status codes so
// every controller reports failures the same way.
func RespondDomainError(c *gin.Context, err error) {
	var (
		validationErr   *models.ValidationError
		invalidStateErr *models.InvalidStateError
		conflictErr     *models.ConflictError
		persistenceErr  *models.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &invalidStateErr):
		RespondError(c, http.StatusConflict, err)
	case errors.As(err, &conflictErr):
		RespondError(c, http.StatusConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &persistenceErr):
		RespondError(c, http.StatusInternalServerError, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
