package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// MetricsHandler serves GET /metrics from an exporter.
func MetricsHandler(exporter ports.MetricsExporter) gin.HandlerFunc {
	return gin.WrapH(exporter.Handler())
}
