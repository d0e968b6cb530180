package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// BrokerStatus reports the state of the dispatch broker connection
type BrokerStatus interface {
	Driver() string
	IsConnected() bool
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	broker    BrokerStatus
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. broker may be nil.
func NewSystemHandler(name, version string, broker BrokerStatus) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		broker:    broker,
		startTime: time.Now(),
	}
}

// BrokerHealth is the broker part of the health response
type BrokerHealth struct {
	Driver    string `json:"driver"`
	Connected bool   `json:"connected"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string       `json:"status"`
	Time   string       `json:"time"`
	Broker BrokerHealth `json:"broker"`
}

// Health handles GET /health.
// A disconnected broker reports "degraded" with 200, since orders are still accepted.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		Time:   time.Now().Format(time.RFC3339),
	}
	if h.broker != nil {
		resp.Broker = BrokerHealth{Driver: h.broker.Driver(), Connected: h.broker.IsConnected()}
		if !resp.Broker.Connected {
			resp.Status = "degraded"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo handles GET /api/system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping handles GET /api/system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
