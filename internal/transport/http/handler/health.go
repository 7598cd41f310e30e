package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	appName         string
	env             string
	tokenConfigured bool
	startedAt       time.Time
}

func NewHealthHandler(appName, env string, tokenConfigured bool, startedAt time.Time) *HealthHandler {
	return &HealthHandler{
		appName:         appName,
		env:             env,
		tokenConfigured: tokenConfigured,
		startedAt:       startedAt,
	}
}

// Check reports process liveness. The only dependency is the vendor API,
// which is not probed here: a missing token is reported, not treated as down.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":              h.appName,
		"env":              h.env,
		"uptime_sec":       int(time.Since(h.startedAt).Seconds()),
		"token_configured": h.tokenConfigured,
	})
}
