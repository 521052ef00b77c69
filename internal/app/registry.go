package app

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/control-room-cisa/server-planillero-sub000/internal/attendance"
	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	"github.com/control-room-cisa/server-planillero-sub000/internal/employee"
	"github.com/control-room-cisa/server-planillero-sub000/internal/holiday"
	"github.com/control-room-cisa/server-planillero-sub000/internal/messaging/kafka"
	"github.com/control-room-cisa/server-planillero-sub000/internal/middleware"
	"github.com/control-room-cisa/server-planillero-sub000/internal/schedule"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	zone *time.Location,
	cfg classify.Config,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	holidayService := holiday.NewService(db, holidayRepo, rdb)

	// --- Classification engine ---
	deps := classify.Deps{
		Records:  attendance.NewSource(attendanceRepo, zone),
		Holidays: holiday.NewCalendar(holidayService),
		Config:   cfg,
	}
	scheduleService := schedule.NewService(db, employee.NewDirectory(employeeRepo), deps, outboxRepo, rdb)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// --- Middleware + Routes ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		employee.RegisterRoutes(api, employeeHandler)
		holiday.RegisterRoutes(api, holidayHandler)
		schedule.RegisterRoutes(api, scheduleHandler)
	}

	return nil
}
