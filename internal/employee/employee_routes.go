package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	{
		employees.POST("", h.Create)
		employees.GET("", h.GetAll)
		employees.GET("/:id", h.GetByID)
		employees.PUT("/:id", h.Update)
	}
}
