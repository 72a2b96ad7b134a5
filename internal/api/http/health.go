package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/service"
)

// ProbeSource reports the last known downstream reachability.
type ProbeSource interface {
	Status() service.ProbeStatus
}

type DownstreamHealth struct {
	URL string `json:"url"`
	service.ProbeStatus
}

type HealthResponse struct {
	Status     string           `json:"status"`
	Timestamp  time.Time        `json:"timestamp"`
	Service    string           `json:"service"`
	Version    string           `json:"version"`
	Downstream DownstreamHealth `json:"downstream"`
}

type HealthHandler struct {
	serviceName   string
	version       string
	downstreamURL string
	probe         ProbeSource
}

// NewHealthHandler builds the health endpoint. probe may be nil when the
// downstream probe is disabled; the state is then reported as unknown.
func NewHealthHandler(serviceName, version, downstreamURL string, probe ProbeSource) *HealthHandler {
	return &HealthHandler{
		serviceName:   serviceName,
		version:       version,
		downstreamURL: downstreamURL,
		probe:         probe,
	}
}

// HealthCheck always answers 200: the gateway itself is up even when the
// downstream is not.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ds := DownstreamHealth{URL: h.downstreamURL, ProbeStatus: service.ProbeStatus{State: service.ProbeUnknown}}
	if h.probe != nil {
		ds.ProbeStatus = h.probe.Status()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Service:    h.serviceName,
		Version:    h.version,
		Downstream: ds,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
