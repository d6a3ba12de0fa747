package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"                // Gin web framework
	"github.com/go-playground/validator/v10"  // Binding validation errors
	"github.com/sirupsen/logrus"              // Logging library

	"recipe_api/internal/apperror"
)

// callerID pulls the authenticated user's id stored by the JWT middleware
func callerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// renderError maps an application error onto the HTTP response. Validation
// failures carry a field-keyed error map; anything unclassified is a server
// defect and gets logged before the generic 500.
func renderError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode() >= http.StatusInternalServerError {
			logrus.WithField("error", appErr.Error()).Error("Request failed")
		}
		if len(appErr.Fields) > 0 {
			c.JSON(appErr.StatusCode(), gin.H{"errors": appErr.Fields})
			return
		}
		c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message})
		return
	}
	logrus.WithField("error", err.Error()).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// renderBindError converts gin binding failures into the same field-keyed
// error map shape that renderError produces for validation errors
func renderBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = bindingMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}

// bindingMessage turns a validator tag into a user-facing message
func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "value is too short"
	case "gt":
		return "value must be greater than zero"
	default:
		return "invalid value"
	}
}
