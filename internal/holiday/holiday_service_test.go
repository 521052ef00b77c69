package holiday_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/control-room-cisa/server-planillero-sub000/internal/holiday"
	holidayerrors "github.com/control-room-cisa/server-planillero-sub000/internal/holiday/errors"
)

type fakeHolidayRepository struct {
	withTxFn       func(tx *sql.Tx) holiday.Repository
	upsertFn       func(ctx context.Context, h *holiday.Holiday) error
	findByDateFn   func(ctx context.Context, date time.Time) (*holiday.Holiday, error)
	findRangeFn    func(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error)
	deleteByDateFn func(ctx context.Context, date time.Time) error
}

func (f *fakeHolidayRepository) WithTx(tx *sql.Tx) holiday.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeHolidayRepository) Upsert(ctx context.Context, h *holiday.Holiday) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, h)
	}
	return nil
}

func (f *fakeHolidayRepository) FindByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	if f.findByDateFn != nil {
		return f.findByDateFn(ctx, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHolidayRepository) FindRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	if f.findRangeFn != nil {
		return f.findRangeFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeHolidayRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	if f.deleteByDateFn != nil {
		return f.deleteByDateFn(ctx, date)
	}
	return nil
}

func TestHolidayService_Upsert(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeHolidayRepository{}
	svc := holiday.NewService(db, repo, nil)

	resp, err := svc.Upsert(context.Background(), holiday.UpsertHolidayRequest{
		Date: "2026-09-15",
		Name: "Independence Day",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "Independence Day", resp.Name)
}

func TestHolidayService_Upsert_BadDate(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := holiday.NewService(db, &fakeHolidayRepository{}, nil)

	_, err = svc.Upsert(context.Background(), holiday.UpsertHolidayRequest{
		Date: "15/09/2026",
		Name: "Independence Day",
	})

	assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
}

func TestHolidayService_GetRange_Invalid(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := holiday.NewService(db, &fakeHolidayRepository{}, nil)

	_, err = svc.GetRange(context.Background(), "2026-09-15", "2026-09-01")

	assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateRange)
}

func TestHolidayService_Status(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	t.Run("holiday found", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			findByDateFn: func(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
				return &holiday.Holiday{ID: uuid.New(), HolidayDate: date, Name: "Independence Day"}, nil
			},
		}
		svc := holiday.NewService(db, repo, nil)

		status, err := svc.Status(context.Background(), "2026-09-15")

		assert.NoError(t, err)
		assert.True(t, status.IsHoliday)
		assert.Equal(t, "Independence Day", status.Name)
	})

	t.Run("ordinary day", func(t *testing.T) {
		svc := holiday.NewService(db, &fakeHolidayRepository{}, nil)

		status, err := svc.Status(context.Background(), "2026-09-16")

		assert.NoError(t, err)
		assert.False(t, status.IsHoliday)
	})
}

func TestHolidayService_Status_CacheHit(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	// The repository would say "not a holiday"; the cached value must win.
	svc := holiday.NewService(db, &fakeHolidayRepository{}, rdb)

	cached, err := json.Marshal(holiday.HolidayStatus{IsHoliday: true, Name: "Independence Day"})
	assert.NoError(t, err)
	redisMock.ExpectGet("holidays:date:2026-09-15").SetVal(string(cached))

	status, err := svc.Status(context.Background(), "2026-09-15")

	assert.NoError(t, err)
	assert.True(t, status.IsHoliday)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCalendar_AdaptsService(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeHolidayRepository{
		findByDateFn: func(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
			return &holiday.Holiday{ID: uuid.New(), HolidayDate: date, Name: "Independence Day"}, nil
		},
	}
	cal := holiday.NewCalendar(holiday.NewService(db, repo, nil))

	info, err := cal.Holiday(context.Background(), "2026-09-15")

	assert.NoError(t, err)
	assert.True(t, info.IsHoliday)
	assert.Equal(t, "Independence Day", info.Name)
}
