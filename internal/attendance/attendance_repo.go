package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)
	Update(ctx context.Context, rec *AttendanceRecord) error
	ReplaceActivities(ctx context.Context, recordID string, activities []Activity) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&rec).Error
	return &rec, err
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Omit("Activities").Save(rec).Error
}

// ReplaceActivities swaps a record's activity list wholesale; the upsert API
// always sends the full list.
func (r *repository) ReplaceActivities(ctx context.Context, recordID string, activities []Activity) error {
	if err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Delete(&Activity{}).Error; err != nil {
		return err
	}
	if len(activities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&activities).Error
}

// IsUniqueViolation reports a postgres duplicate-key failure, used to map
// concurrent upserts of the same employee+date to a retryable conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
