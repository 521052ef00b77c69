package schedule

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	schedules := r.Group("/schedules/:employeeId")
	{
		schedules.GET("/days/:date", h.GetDaily)
		schedules.GET("/hours", h.GetRangeHours)
		schedules.GET("/apportionment", h.GetRangeApportionment)
		schedules.POST("/reports", h.RequestReport)
	}
}
