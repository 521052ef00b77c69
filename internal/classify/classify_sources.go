package classify

import (
	"context"
	"time"

	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// RecordSource fetches one day's attendance record. The second return value
// reports whether a record exists; the classifiers substitute a synthetic
// fully-free record when it does not.
//
//go:generate mockgen -source=classify_sources.go -destination=mock/classify_sources_mock.go -package=mock
type RecordSource interface {
	Record(ctx context.Context, employeeID, date string) (segment.Record, bool, error)
}

// HolidayInfo is the calendar answer for one date.
type HolidayInfo struct {
	IsHoliday bool
	Name      string
}

// HolidayCalendar answers whether a date is an official holiday.
type HolidayCalendar interface {
	Holiday(ctx context.Context, date string) (HolidayInfo, error)
}

// EmployeeInfo is the directory answer for one employee.
type EmployeeInfo struct {
	ID                 string
	FullName           string
	SchedulePolicyCode string
}

// EmployeeDirectory resolves employees and their configured schedule policy.
type EmployeeDirectory interface {
	Employee(ctx context.Context, id string) (EmployeeInfo, bool, error)
}

const dateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD calendar string.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, classifyerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
