package holiday

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	holidays := r.Group("/holidays")
	{
		holidays.PUT("", h.Upsert)
		holidays.GET("", h.GetRange)
		holidays.GET("/:date", h.Status)
		holidays.DELETE("/:date", h.Delete)
	}
}
