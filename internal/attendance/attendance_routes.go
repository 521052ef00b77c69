package attendance

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/control-room-cisa/server-planillero-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	{
		attendances.PUT("", middleware.Idempotency(rdb), h.Upsert)
		attendances.GET("/:employeeId/:date", h.Get)
	}
}
