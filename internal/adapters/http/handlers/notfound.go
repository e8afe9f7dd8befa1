package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/platform/telemetry"
)

// NotFound is the catch-all for unknown paths and unsupported methods.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.ErrorNotFound,
		fmt.Sprintf("%s %s does not exist", c.Request.Method, c.Request.URL.Path),
	).
		WithRequestID(middleware.GetRequestID(c)).
		WithTraceID(telemetry.TraceIDFromContext(c.Request.Context())).
		WithAvailableEndpoints(EndpointKeys()))
}
