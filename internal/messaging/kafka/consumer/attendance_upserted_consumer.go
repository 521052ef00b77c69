package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/control-room-cisa/server-planillero-sub000/internal/events"
	"github.com/control-room-cisa/server-planillero-sub000/internal/schedule"
)

// ConsumeAttendanceUpserted drops the cached range totals of any employee
// whose attendance just changed, so the next schedule read recomputes.
func ConsumeAttendanceUpserted(
	ctx context.Context,
	reader *kafkago.Reader,
	scheduleService schedule.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_upserted")
	log.Info("attendance upserted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance upserted consumer stopped")
				return
			}
			log.Error("fetch attendance upserted message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceUpsertedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance upserted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := scheduleService.InvalidateEmployeeCache(ctx, event.EmployeeID); err != nil {
			log.Error("invalidate schedule cache failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance upserted message failed", zap.Error(err))
			continue
		}

		log.Info("schedule cache invalidated from attendance upsert",
			zap.String("employee_id", event.EmployeeID),
			zap.String("date", event.Date),
		)
	}
}
