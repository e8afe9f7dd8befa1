package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-generator-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-generator-api/internal/ports"
)

// NewBuildInfo creates a BuildInfo with the Go version automatically set.
// The other values are injected at build time using ldflags.
func NewBuildInfo(version, commit, buildTime string) dto.BuildInfo {
	return dto.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// ServiceInfo is the static part of the GET / response.
type ServiceInfo struct {
	Name    string
	Version string
	Build   dto.BuildInfo
}

// HealthHandler serves the service metadata endpoint.
type HealthHandler struct {
	registry ports.HealthRegistry
	info     ServiceInfo
}

// NewHealthHandler creates a new health handler. A nil registry reports
// healthy.
func NewHealthHandler(registry ports.HealthRegistry, info ServiceInfo) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		info:     info,
	}
}

// ServiceInfo handles GET /. It always answers 200; the status field
// reflects the registered health checks.
func (h *HealthHandler) ServiceInfo(c *gin.Context) {
	status := ports.HealthStatusHealthy
	if h.registry != nil {
		status = h.registry.CheckAll(c.Request.Context()).Status
	}

	c.JSON(http.StatusOK, dto.ServiceInfoResponse{
		Service:   h.info.Name,
		Status:    string(status),
		Version:   h.info.Version,
		RequestID: middleware.GetRequestID(c),
		Endpoints: endpointDescriptions(),
		Build:     h.info.Build,
	})
}
