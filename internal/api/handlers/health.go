package handlers

import (
	"net/http"

	"parking-backend/pkg/database"
	"parking-backend/pkg/redis"
	"parking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	db    *mongo.Database
	redis *redis.Client
}

func NewHealthHandler(db *mongo.Database, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Health reports liveness of the service and its dependencies. Redis is
// optional, so a cache outage degrades the report without failing it.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{
		"database": "ok",
		"cache":    "disabled",
	}

	if err := database.Health(h.db); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	}

	if h.redis != nil {
		redisHealth := h.redis.HealthCheck()
		if redisHealth.IsConnected {
			checks["cache"] = "ok"
		} else {
			checks["cache"] = redisHealth.Error
		}
	}

	if status == http.StatusOK {
		utils.SuccessResponse(c, status, "Service healthy", checks)
		return
	}

	utils.ErrorResponse(c, status, "Service degraded", nil)
}
