package holiday

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, h *Holiday) error
	FindByDate(ctx context.Context, date time.Time) (*Holiday, error)
	FindRange(ctx context.Context, from, to time.Time) ([]Holiday, error)
	DeleteByDate(ctx context.Context, date time.Time) error
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

func (r *repository) Upsert(ctx context.Context, h *Holiday) error {
	var existing Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date = ?", h.HolidayDate.Format("2006-01-02")).
		First(&existing).Error
	if err == nil {
		existing.Name = h.Name
		*h = existing
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date = ?", date.Format("2006-01-02")).
		First(&h).Error
	return &h, err
}

func (r *repository) FindRange(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("holiday_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByDate(ctx context.Context, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("holiday_date = ?", date.Format("2006-01-02")).
		Delete(&Holiday{}).Error
}
