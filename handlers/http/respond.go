package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"realestate-server/apperr"
	"realestate-server/logger"
	"realestate-server/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError is the single place errors become HTTP responses.
func respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		logger.Log.WithError(err).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
	}
	c.AbortWithStatusJSON(status, body)
}

func errorBody(err error) (int, gin.H) {
	if appErr, ok := apperr.As(err); ok {
		body := gin.H{"error": appErr.Message, "code": appErr.Code}
		if appErr.Details != nil {
			body["details"] = appErr.Details
		}
		return appErr.Status, body
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, gin.H{"error": "resource not found", "code": apperr.CodeNotFound}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, gin.H{"error": "resource already exists", "code": apperr.CodeConflict}
	case validation.IsValidationError(err):
		return http.StatusBadRequest, gin.H{"error": validation.Message(err), "code": apperr.CodeValidation}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal server error", "code": apperr.CodeInternal}
}

// bindJSON binds and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	if validation.IsValidationError(err) {
		return apperr.Validation(validation.Message(err))
	}
	appErr := apperr.BadRequest("Invalid request body")
	appErr.Details = err.Error()
	return appErr
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperr.BadRequest("invalid "+name))
		return 0, false
	}
	return id, true
}
