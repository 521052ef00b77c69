package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/control-room-cisa/server-planillero-sub000/internal/attendance/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/events"
	"github.com/control-room-cisa/server-planillero-sub000/internal/messaging/kafka"
	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/contextutil"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error)
	Get(ctx context.Context, employeeID, date string) (AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		logger: zap.L().Named("attendance.service"),
	}
}

// Upsert replaces one employee's day wholesale: the record row is created or
// updated and the activity list is swapped for the submitted one. An
// attendance.upserted outbox event rides the same transaction.
func (s *service) Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error) {
	employeeID, workDate, entryAt, exitAt, err := validateUpsertRequest(req)
	if err != nil {
		return AttendanceResponse{}, err
	}
	activities, err := buildActivities(req.Activities)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	switch {
	case err == nil:
		row.EntryAt = entryAt
		row.ExitAt = exitAt
		row.ContinuousShift = req.ContinuousShift
		row.FreeDay = req.FreeDay
		if err := qtx.Update(ctx, row); err != nil {
			return AttendanceResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &AttendanceRecord{
			ID:              uuid.New(),
			EmployeeID:      employeeID,
			WorkDate:        workDate,
			EntryAt:         entryAt,
			ExitAt:          exitAt,
			ContinuousShift: req.ContinuousShift,
			FreeDay:         req.FreeDay,
		}
		if err := qtx.Create(ctx, row); err != nil {
			if IsUniqueViolation(err) {
				return AttendanceResponse{}, attendanceerrors.ErrConcurrentUpsert
			}
			return AttendanceResponse{}, err
		}
	default:
		return AttendanceResponse{}, err
	}

	for i := range activities {
		activities[i].RecordID = row.ID
		activities[i].Position = i
	}
	if err := qtx.ReplaceActivities(ctx, row.ID.String(), activities); err != nil {
		return AttendanceResponse{}, err
	}
	row.Activities = activities

	if err := s.writeOutboxEvent(ctx, tx, row); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance upserted",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.Int("activities", len(activities)),
	)
	return mapToResponse(*row), nil
}

func (s *service) Get(ctx context.Context, employeeID, date string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	workDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) writeOutboxEvent(ctx context.Context, tx *sql.Tx, row *AttendanceRecord) error {
	if s.outbox == nil {
		return nil
	}

	event := events.AttendanceUpsertedEvent{
		EventType:  "attendance.upserted",
		RecordID:   row.ID.String(),
		EmployeeID: row.EmployeeID.String(),
		Date:       row.WorkDate.Format(dateLayout),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance_record",
		AggregateID:   row.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceUpsertedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateUpsertRequest(req UpsertAttendanceRequest) (uuid.UUID, time.Time, *time.Time, *time.Time, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, nil, nil, attendanceerrors.ErrInvalidEmployeeID
	}

	workDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return uuid.Nil, time.Time{}, nil, nil, attendanceerrors.ErrInvalidDateFormat
	}

	if (req.EntryAt == nil) != (req.ExitAt == nil) {
		return uuid.Nil, time.Time{}, nil, nil, attendanceerrors.ErrEntryExitRequired
	}

	entryAt, err := parseTimestamp(req.EntryAt)
	if err != nil {
		return uuid.Nil, time.Time{}, nil, nil, err
	}
	exitAt, err := parseTimestamp(req.ExitAt)
	if err != nil {
		return uuid.Nil, time.Time{}, nil, nil, err
	}

	return employeeID, workDate, entryAt, exitAt, nil
}

func buildActivities(payloads []ActivityPayload) ([]Activity, error) {
	activities := make([]Activity, 0, len(payloads))
	for _, p := range payloads {
		if p.IsExtra && (p.StartAt == nil || p.EndAt == nil) {
			return nil, attendanceerrors.ErrExtraRequiresInterval
		}

		startAt, err := parseTimestamp(p.StartAt)
		if err != nil {
			return nil, err
		}
		endAt, err := parseTimestamp(p.EndAt)
		if err != nil {
			return nil, err
		}

		activities = append(activities, Activity{
			ID:             uuid.New(),
			IsExtra:        p.IsExtra,
			IsCompensatory: p.IsCompensatory,
			JobCode:        p.JobCode,
			JobName:        p.JobName,
			Description:    p.Description,
			StartAt:        startAt,
			EndAt:          endAt,
			DurationHours:  p.DurationHours,
		})
	}
	return activities, nil
}

func parseTimestamp(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimestamp
	}
	return &t, nil
}

func mapToResponse(rec AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:              rec.ID.String(),
		EmployeeID:      rec.EmployeeID.String(),
		Date:            rec.WorkDate.Format(dateLayout),
		ContinuousShift: rec.ContinuousShift,
		FreeDay:         rec.FreeDay,
	}
	resp.EntryAt = formatTimestamp(rec.EntryAt)
	resp.ExitAt = formatTimestamp(rec.ExitAt)

	for _, act := range rec.Activities {
		resp.Activities = append(resp.Activities, ActivityResponse{
			ID:             act.ID.String(),
			IsExtra:        act.IsExtra,
			IsCompensatory: act.IsCompensatory,
			JobCode:        act.JobCode,
			JobName:        act.JobName,
			Description:    act.Description,
			StartAt:        formatTimestamp(act.StartAt),
			EndAt:          formatTimestamp(act.EndAt),
			DurationHours:  act.DurationHours,
		})
	}
	return resp
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
