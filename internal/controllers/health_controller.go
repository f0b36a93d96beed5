package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
)

type HealthController struct {
	checker *monitoring.HealthChecker
}

func NewHealthController(checker *monitoring.HealthChecker) *HealthController {
	return &HealthController{checker: checker}
}

// Health reports component status. Degraded still returns 200 so load
// balancers keep routing while a non-critical dependency recovers.
func (hc *HealthController) Health(c *gin.Context) {
	status := hc.checker.CheckHealth(c.Request.Context())
	c.JSON(http.StatusOK, status)
}
