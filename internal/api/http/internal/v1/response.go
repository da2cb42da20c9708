package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, &ErrorStruct{
			ErrorCode:    InvalidInputCode,
			ErrorMessage: ErrorMessage(err.Error()),
		})
		return
	}

	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

var knownErrors = []struct {
	err    error
	status int
	code   ErrorCode
}{
	{service.ErrRegionNotFound, http.StatusNotFound, RegionNotFoundCode},
	{service.ErrBusinessNotFound, http.StatusNotFound, BusinessNotFoundCode},
	{service.ErrRegionAlreadyExists, http.StatusConflict, RegionAlreadyExistsCode},
	{service.ErrRegionHasChildren, http.StatusConflict, RegionHasChildrenCode},
	{service.ErrPendingRegionImmutable, http.StatusBadRequest, PendingRegionImmutableCode},
	{service.ErrParentRegionNotFound, http.StatusBadRequest, ParentRegionNotFoundCode},
	{service.ErrNotACity, http.StatusBadRequest, NotACityCode},
}

// serviceErrorResponse maps a service error onto a status and error code.
// Anything unrecognised is logged and reported as a 500.
func serviceErrorResponse(c *gin.Context, err error, msg string) {
	for _, known := range knownErrors {
		if errors.Is(err, known.err) {
			errorResponse(c, known.status, known.code)
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, &ErrorStruct{
			ErrorCode:    InvalidInputCode,
			ErrorMessage: ErrorMessage(err.Error()),
		})
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, UnknownErrorCode)
	case errors.Is(err, domain.ErrDuplicateEntry):
		errorResponse(c, http.StatusConflict, UnknownErrorCode)
	default:
		logger.Error(msg, zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "uuid":
		return "Must be a uuid"
	case "latitude":
		return "Must be a latitude between -90 and 90"
	case "longitude":
		return "Must be a longitude between -180 and 180"
	case "required_with":
		return fmt.Sprintf("Required together with %v", value)
	case "categoryid":
		return "Must be a category id like cat, cat:type or cat:type:sub"
	case "min":
		return fmt.Sprintf("Must be at least %v", value)
	case "max":
		return fmt.Sprintf("Must be at most %v", value)
	case "oneof":
		return fmt.Sprintf("Must be one of %v", value)
	case "gt":
		return fmt.Sprintf("Must be greater than %v", value)
	}
	return tag
}
