package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	StatusHealthy = "healthy"
	ServiceName   = "medical-coding-api"
	APIName       = "Medical Coding API"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// InfoResponse is returned by GET /info.
type InfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Handler serves the status endpoints. They hold no state, so the reported
// status never depends on earlier requests.
type Handler struct {
	version string
	now     func() time.Time
}

// NewHandler creates a status handler reporting version.
func NewHandler(version string) *Handler {
	return &Handler{version: version, now: time.Now}
}

// RegisterRoutes registers /, /health and /info.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/info", h.Info)
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}

// Root handles GET /
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Message:   APIName + " is running",
		Status:    StatusHealthy,
		Version:   h.version,
		Timestamp: h.timestamp(),
	})
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    StatusHealthy,
		Service:   ServiceName,
		Timestamp: h.timestamp(),
		Version:   h.version,
	})
}

// Info handles GET /info
func (h *Handler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Name:        APIName,
		Version:     h.version,
		Description: "Keyword-based medical coding analysis",
		Endpoints: map[string]string{
			"POST /analyze": "Analyze patient descriptions for medical coding",
			"GET /health":   "Health check",
			"GET /info":     "API information",
			"GET /docs":     "Interactive API documentation",
		},
	})
}
