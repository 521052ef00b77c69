package consumer

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/control-room-cisa/server-planillero-sub000/internal/events"
	"github.com/control-room-cisa/server-planillero-sub000/internal/schedule"
	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/apperror"
)

// ConsumeRangeReportRequested computes the requested range totals, which
// also warms the redis cache the HTTP read path serves from. Classification
// hard failures are terminal for the message; retrying cannot fix a day
// that does not balance.
func ConsumeRangeReportRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	scheduleService schedule.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.range_report")
	log.Info("range report consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("range report consumer stopped")
				return
			}
			log.Error("fetch range report message failed", zap.Error(err))
			continue
		}

		var event events.RangeReportRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode range report event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		resp, err := scheduleService.GetRangeHourCount(ctx, event.EmployeeID, event.DateFrom, event.DateTo)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				log.Warn("range report rejected by classifier",
					zap.String("employee_id", event.EmployeeID),
					zap.String("date_from", event.DateFrom),
					zap.String("date_to", event.DateTo),
					zap.String("code", appErr.Code),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("compute range report failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit range report message failed", zap.Error(err))
			continue
		}

		log.Info("range report computed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("from", resp.From),
			zap.String("to", resp.To),
			zap.Int("days", len(resp.Days)),
		)
	}
}
