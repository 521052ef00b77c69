package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/control-room-cisa/server-planillero-sub000/internal/apportion"
	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	"github.com/control-room-cisa/server-planillero-sub000/internal/events"
	"github.com/control-room-cisa/server-planillero-sub000/internal/messaging/kafka"
	scheduleerrors "github.com/control-room-cisa/server-planillero-sub000/internal/schedule/errors"
)

const rangeHoursCacheTTL = 5 * time.Minute

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	GetDailySchedule(ctx context.Context, employeeID, date string) (DailyScheduleResponse, error)
	GetRangeHourCount(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeHoursResponse, error)
	GetRangeApportionment(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeApportionmentResponse, error)
	RequestRangeReport(ctx context.Context, employeeID string, req RangeReportRequest) (RangeReportAccepted, error)
	InvalidateEmployeeCache(ctx context.Context, employeeID string) error
}

type service struct {
	db        *sql.DB
	directory classify.EmployeeDirectory
	deps      classify.Deps
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	directory classify.EmployeeDirectory,
	deps classify.Deps,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:        db,
		directory: directory,
		deps:      deps,
		outbox:    outbox,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    zap.L().Named("schedule.service"),
	}
}

// resolve finds the employee and builds the classifier for their policy.
func (s *service) resolve(ctx context.Context, employeeID string) (classify.EmployeeInfo, classify.Classifier, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return classify.EmployeeInfo{}, nil, scheduleerrors.ErrInvalidEmployeeID
	}

	emp, found, err := s.directory.Employee(ctx, employeeID)
	if err != nil {
		return classify.EmployeeInfo{}, nil, err
	}
	if !found {
		return classify.EmployeeInfo{}, nil, scheduleerrors.ErrEmployeeNotFound
	}

	classifier, err := classify.ForPolicy(emp.SchedulePolicyCode, s.deps)
	if err != nil {
		return classify.EmployeeInfo{}, nil, err
	}
	return emp, classifier, nil
}

func (s *service) GetDailySchedule(ctx context.Context, employeeID, date string) (DailyScheduleResponse, error) {
	emp, classifier, err := s.resolve(ctx, employeeID)
	if err != nil {
		return DailyScheduleResponse{}, err
	}

	day, err := classifier.SegmentDay(ctx, employeeID, date)
	if err != nil {
		return DailyScheduleResponse{}, err
	}

	return DailyScheduleResponse{
		EmployeeID:  emp.ID,
		PolicyCode:  emp.SchedulePolicyCode,
		Date:        day.Date,
		Holiday:     day.Holiday,
		HolidayName: day.HolidayName,
		FreeDay:     day.FreeDay,
		Buckets:     day.Buckets,
		Segments:    day.Segments,
		Findings:    day.Findings,
	}, nil
}

func (s *service) GetRangeHourCount(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeHoursResponse, error) {
	cacheKey := rangeHoursCacheKey(employeeID, dateFrom, dateTo)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp RangeHoursResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emp, classifier, err := s.resolve(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		res, err := classifier.ClassifyRange(ctx, employeeID, dateFrom, dateTo)
		if err != nil {
			return nil, err
		}

		resp := RangeHoursResponse{
			EmployeeID: emp.ID,
			PolicyCode: emp.SchedulePolicyCode,
			From:       res.From,
			To:         res.To,
			Hours:      bucketHours(res.Buckets),
			Days:       make([]DayHours, len(res.Days)),
		}
		for i, day := range res.Days {
			resp.Days[i] = DayHours{Date: day.Date, Hours: bucketHours(day.Buckets)}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, rangeHoursCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return RangeHoursResponse{}, err
	}
	return v.(RangeHoursResponse), nil
}

func (s *service) GetRangeApportionment(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeApportionmentResponse, error) {
	emp, classifier, err := s.resolve(ctx, employeeID)
	if err != nil {
		return RangeApportionmentResponse{}, err
	}

	res, err := classifier.ClassifyRange(ctx, employeeID, dateFrom, dateTo)
	if err != nil {
		return RangeApportionmentResponse{}, err
	}

	return RangeApportionmentResponse{
		EmployeeID:    emp.ID,
		PolicyCode:    emp.SchedulePolicyCode,
		From:          res.From,
		To:            res.To,
		Apportionment: apportion.Distribute(res),
	}, nil
}

func (s *service) RequestRangeReport(ctx context.Context, employeeID string, req RangeReportRequest) (RangeReportAccepted, error) {
	if _, _, err := s.resolve(ctx, employeeID); err != nil {
		return RangeReportAccepted{}, err
	}
	if _, err := classify.ParseDate(req.DateFrom); err != nil {
		return RangeReportAccepted{}, err
	}
	if _, err := classify.ParseDate(req.DateTo); err != nil {
		return RangeReportAccepted{}, err
	}

	event := events.RangeReportRequestedEvent{
		EventType:   "range_report_requested",
		EmployeeID:  employeeID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		RequestedBy: req.RequestedBy,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return RangeReportAccepted{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RangeReportAccepted{}, err
	}
	defer tx.Rollback()

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "schedule",
		AggregateID:   employeeID,
		EventType:     event.EventType,
		Topic:         events.RangeReportRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return RangeReportAccepted{}, err
	}
	if err := tx.Commit(); err != nil {
		return RangeReportAccepted{}, err
	}

	s.logger.Info("range report requested",
		zap.String("employee_id", employeeID),
		zap.String("date_from", req.DateFrom),
		zap.String("date_to", req.DateTo),
	)

	return RangeReportAccepted{
		EmployeeID: employeeID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Status:     "accepted",
	}, nil
}

// InvalidateEmployeeCache drops every cached range total for one employee.
// Called when an attendance upsert lands for that employee.
func (s *service) InvalidateEmployeeCache(ctx context.Context, employeeID string) error {
	if s.rdb == nil {
		return nil
	}

	pattern := fmt.Sprintf("schedule:hours:%s:*", employeeID)
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("schedule cache invalidation failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
	return iter.Err()
}

func rangeHoursCacheKey(employeeID, dateFrom, dateTo string) string {
	return fmt.Sprintf("schedule:hours:%s:%s:%s", employeeID, dateFrom, dateTo)
}
