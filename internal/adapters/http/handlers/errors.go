package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/domain"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/telemetry"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var notFound *domain.NotFoundError

	switch {
	case errors.As(err, &notFound) && notFound.Entity != "":
		entity := notFound.Entity
		return http.StatusNotFound, dto.NewErrorResponse(
			entity+" not found",
			fmt.Sprintf("No %s exists with ID: %s", strings.ToLower(entity), notFound.ID),
		)

	case domain.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorResponse(dto.ErrorNotFound, err.Error())

	case domain.IsValidation(err):
		return http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorBadRequest, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrorServiceUnavailable, err.Error())

	default:
		// never echo unknown errors to clients
		return http.StatusInternalServerError, dto.NewInternalErrorResponse()
	}
}

// RespondWithError writes the mapped error response with the request and
// trace ids. Internal errors are logged with full detail.
func RespondWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	ctx := c.Request.Context()

	errResp.
		WithRequestID(middleware.GetRequestID(c)).
		WithTraceID(telemetry.TraceIDFromContext(ctx))

	if status >= http.StatusInternalServerError {
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			"error", err.Error(),
			"status", status,
		)
	}

	c.JSON(status, errResp)
}
