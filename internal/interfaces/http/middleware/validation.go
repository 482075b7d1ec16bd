package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
)

// SetupValidator makes validation errors report the json or form name of a
// field instead of its Go name
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// FormatValidationErrors formats a binding error into a standard response.
// Errors that are not validator errors (unparsable numbers or dates) carry no
// field details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return dto.NewValidationErrorResponse("Invalid query parameters", requestID, nil)
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "timezone":
		return "Must be an IANA timezone name"
	default:
		return "Invalid value"
	}
}
