package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Service string
	Started time.Time
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{Service: service, Started: time.Now()}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Uptime    float64   `json:"uptime"`
}

// Health reports liveness only; it does not probe the database.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Service:   h.Service,
		Uptime:    time.Since(h.Started).Seconds(),
	})
}
