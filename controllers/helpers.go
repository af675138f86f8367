package controllers

import (
	"github.com/gin-gonic/gin"

	"foodshot-admin-api/config"
	"foodshot-admin-api/services"
)

func getCurrentUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// defaultInvalidator publishes through redis when configured, otherwise
// log-only.
func defaultInvalidator() services.Invalidator {
	if config.Redis != nil {
		return services.NewRedisInvalidator(config.Redis)
	}
	return services.LogInvalidator{}
}
