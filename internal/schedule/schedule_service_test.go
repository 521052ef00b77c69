package schedule_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/events"
	"github.com/control-room-cisa/server-planillero-sub000/internal/messaging/kafka"
	"github.com/control-room-cisa/server-planillero-sub000/internal/schedule"
	scheduleerrors "github.com/control-room-cisa/server-planillero-sub000/internal/schedule/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

type fakeDirectory struct {
	emps map[string]classify.EmployeeInfo
}

func (f *fakeDirectory) Employee(ctx context.Context, id string) (classify.EmployeeInfo, bool, error) {
	emp, ok := f.emps[id]
	return emp, ok, nil
}

type fakeRecords struct {
	recs map[string]segment.Record
}

func (f *fakeRecords) Record(ctx context.Context, employeeID, date string) (segment.Record, bool, error) {
	rec, ok := f.recs[date]
	return rec, ok, nil
}

type fakeHolidays struct{}

func (f *fakeHolidays) Holiday(ctx context.Context, date string) (classify.HolidayInfo, error) {
	return classify.HolidayInfo{}, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func minute(h, m int) int { return h*60 + m }

func workday(date string) segment.Record {
	return segment.Record{
		Date:        date,
		Present:     true,
		EntryMinute: minute(7, 0),
		ExitMinute:  minute(17, 0),
	}
}

type scheduleServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    schedule.Service
	outbox     *fakeOutboxRepository
	employeeID string
}

func setupScheduleServiceTest(t *testing.T, policy string, recs map[string]segment.Record) *scheduleServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	employeeID := uuid.New().String()
	directory := &fakeDirectory{emps: map[string]classify.EmployeeInfo{
		employeeID: {ID: employeeID, FullName: "Ana Flores", SchedulePolicyCode: policy},
	}}
	deps := classify.Deps{
		Records:  &fakeRecords{recs: recs},
		Holidays: &fakeHolidays{},
		Config:   classify.DefaultConfig(),
	}
	outbox := &fakeOutboxRepository{}
	svc := schedule.NewService(db, directory, deps, outbox, nil)

	return &scheduleServiceDeps{db: db, sqlMock: sqlMock, service: svc, outbox: outbox, employeeID: employeeID}
}

func TestScheduleService_GetDailySchedule(t *testing.T) {
	recs := map[string]segment.Record{"2026-03-02": workday("2026-03-02")}
	deps := setupScheduleServiceTest(t, classify.PolicyFlexible, recs)
	defer deps.db.Close()

	resp, err := deps.service.GetDailySchedule(context.Background(), deps.employeeID, "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, classify.PolicyFlexible, resp.PolicyCode)
	assert.Equal(t, 540, resp.Buckets.Normal)
	assert.Equal(t, 60, resp.Buckets.Lunch)
	assert.NotEmpty(t, resp.Segments)
}

func TestScheduleService_ResolveFailures(t *testing.T) {
	deps := setupScheduleServiceTest(t, classify.PolicyFlexible, nil)
	defer deps.db.Close()

	t.Run("invalid employee id", func(t *testing.T) {
		_, err := deps.service.GetDailySchedule(context.Background(), "nope", "2026-03-02")
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidEmployeeID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := deps.service.GetDailySchedule(context.Background(), uuid.New().String(), "2026-03-02")
		assert.ErrorIs(t, err, scheduleerrors.ErrEmployeeNotFound)
	})
}

func TestScheduleService_UnknownPolicySurfaces(t *testing.T) {
	deps := setupScheduleServiceTest(t, "FIXED8", nil)
	defer deps.db.Close()

	_, err := deps.service.GetDailySchedule(context.Background(), deps.employeeID, "2026-03-02")

	assert.ErrorIs(t, err, classifyerrors.ErrUnknownPolicy)
}

func TestScheduleService_GetRangeHourCount(t *testing.T) {
	recs := map[string]segment.Record{
		"2026-03-02": workday("2026-03-02"),
		"2026-03-03": workday("2026-03-03"),
	}
	deps := setupScheduleServiceTest(t, classify.PolicyFlexible, recs)
	defer deps.db.Close()

	resp, err := deps.service.GetRangeHourCount(context.Background(), deps.employeeID, "2026-03-02", "2026-03-03")

	assert.NoError(t, err)
	assert.Len(t, resp.Days, 2)
	assert.True(t, resp.Hours.Normal.Equal(decimal.NewFromInt(18)),
		"expected 18 normal hours, got %s", resp.Hours.Normal)
	assert.True(t, resp.Hours.Lunch.Equal(decimal.NewFromInt(2)))
}

func TestScheduleService_GetRangeHourCount_CacheHit(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	_ = sqlMock

	rdb, redisMock := redismock.NewClientMock()
	employeeID := uuid.New().String()

	// Directory would report the employee as missing; a cache hit must
	// short-circuit before any lookup happens.
	svc := schedule.NewService(db, &fakeDirectory{}, classify.Deps{
		Records:  &fakeRecords{},
		Holidays: &fakeHolidays{},
		Config:   classify.DefaultConfig(),
	}, &fakeOutboxRepository{}, rdb)

	cached := schedule.RangeHoursResponse{
		EmployeeID: employeeID,
		PolicyCode: classify.PolicyFlexible,
		From:       "2026-03-02",
		To:         "2026-03-03",
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	cacheKey := "schedule:hours:" + employeeID + ":2026-03-02:2026-03-03"
	redisMock.ExpectGet(cacheKey).SetVal(string(payload))

	resp, err := svc.GetRangeHourCount(context.Background(), employeeID, "2026-03-02", "2026-03-03")

	assert.NoError(t, err)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestScheduleService_GetRangeApportionment(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{
		{
			HasInterval: true,
			Job:         segment.JobRef{Code: "J1", Name: "Plant"},
			StartMinute: minute(7, 0),
			EndMinute:   minute(17, 0),
		},
	}
	recs := map[string]segment.Record{"2026-03-02": rec}
	deps := setupScheduleServiceTest(t, classify.PolicyFlexible, recs)
	defer deps.db.Close()

	resp, err := deps.service.GetRangeApportionment(context.Background(), deps.employeeID, "2026-03-02", "2026-03-02")

	assert.NoError(t, err)
	if assert.Len(t, resp.Apportionment.Normal, 1) {
		entry := resp.Apportionment.Normal[0]
		assert.Equal(t, "J1", entry.Job.Code)
		assert.True(t, entry.Hours.Equal(decimal.NewFromInt(9)),
			"expected 9 hours, got %s", entry.Hours)
	}
}

func TestScheduleService_RequestRangeReport(t *testing.T) {
	recs := map[string]segment.Record{}
	deps := setupScheduleServiceTest(t, classify.PolicyFlexible, recs)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	var outboxEvent *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		outboxEvent = &event
		return nil
	}

	resp, err := deps.service.RequestRangeReport(context.Background(), deps.employeeID, schedule.RangeReportRequest{
		DateFrom:    "2026-03-01",
		DateTo:      "2026-03-15",
		RequestedBy: "payroll-clerk",
	})

	assert.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)

	if assert.NotNil(t, outboxEvent) {
		assert.Equal(t, events.RangeReportRequestedTopic, outboxEvent.Topic)

		var event events.RangeReportRequestedEvent
		assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &event))
		assert.Equal(t, deps.employeeID, event.EmployeeID)
		assert.Equal(t, "payroll-clerk", event.RequestedBy)
	}

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestScheduleService_RequestRangeReport_BadDates(t *testing.T) {
	deps := setupScheduleServiceTest(t, classify.PolicyFlexible, nil)
	defer deps.db.Close()

	_, err := deps.service.RequestRangeReport(context.Background(), deps.employeeID, schedule.RangeReportRequest{
		DateFrom: "01-03-2026",
		DateTo:   "2026-03-15",
	})

	assert.ErrorIs(t, err, classifyerrors.ErrInvalidDateFormat)
}
