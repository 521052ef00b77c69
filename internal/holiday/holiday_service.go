package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	holidayerrors "github.com/control-room-cisa/server-planillero-sub000/internal/holiday/errors"
)

const (
	dateLayout         = "2006-01-02"
	holidayCachePrefix = "holidays:date:"
	holidayCacheTTL    = 12 * time.Hour
)

type HolidayStatus struct {
	IsHoliday bool   `json:"is_holiday"`
	Name      string `json:"name,omitempty"`
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, date string) error
	GetRange(ctx context.Context, from, to string) ([]HolidayResponse, error)
	Status(ctx context.Context, date string) (HolidayStatus, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		logger: zap.L().Named("holiday.service"),
	}
}

func (s *service) Upsert(ctx context.Context, req UpsertHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	row := &Holiday{
		ID:          uuid.New(),
		HolidayDate: date,
		Name:        req.Name,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return HolidayResponse{}, err
	}

	s.invalidate(ctx, req.Date)
	s.logger.Info("holiday upserted",
		zap.String("date", req.Date),
		zap.String("name", req.Name),
	)
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, date string) error {
	parsed, err := parseDate(date)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByDate(ctx, parsed); err != nil {
		return err
	}
	s.invalidate(ctx, date)
	return nil
}

func (s *service) GetRange(ctx context.Context, from, to string) ([]HolidayResponse, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, holidayerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

// Status answers the per-date holiday lookup the classifiers hit once per
// processed day, so it is the one read path worth caching.
func (s *service) Status(ctx context.Context, date string) (HolidayStatus, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return HolidayStatus{}, err
	}

	cacheKey := holidayCachePrefix + date
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var status HolidayStatus
			if err := json.Unmarshal([]byte(cached), &status); err == nil {
				return status, nil
			}
		}
	}

	var status HolidayStatus
	row, err := s.repo.FindByDate(ctx, parsed)
	if err == nil {
		status = HolidayStatus{IsHoliday: true, Name: row.Name}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return HolidayStatus{}, err
	}

	if s.rdb != nil {
		if jsonData, err := json.Marshal(status); err == nil {
			s.rdb.Set(ctx, cacheKey, jsonData, holidayCacheTTL)
		}
	}
	return status, nil
}

func (s *service) invalidate(ctx context.Context, date string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, holidayCachePrefix+date).Err(); err != nil {
		s.logger.Warn("holiday cache invalidation failed", zap.Error(err))
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Date: h.HolidayDate.Format(dateLayout),
		Name: h.Name,
	}
}
