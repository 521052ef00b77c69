package attendance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// Source adapts stored attendance rows to the classifier's RecordSource
// collaborator interface. All clock times are resolved as minute-of-day in
// the configured zone; an exit earlier than the entry means the window wraps
// midnight, which the segmenter handles.
type Source struct {
	repo Repository
	zone *time.Location
}

func NewSource(repo Repository, zone *time.Location) *Source {
	if zone == nil {
		zone = time.UTC
	}
	return &Source{repo: repo, zone: zone}
}

func (s *Source) Record(ctx context.Context, employeeID, date string) (segment.Record, bool, error) {
	workDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return segment.Record{}, false, err
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return segment.Record{}, false, nil
		}
		return segment.Record{}, false, err
	}

	rec := segment.Record{
		Date:            date,
		Present:         true,
		ContinuousShift: row.ContinuousShift,
		FreeDay:         row.FreeDay,
	}
	if row.EntryAt != nil && row.ExitAt != nil {
		rec.EntryMinute = s.minuteOfDay(*row.EntryAt)
		rec.ExitMinute = s.minuteOfDay(*row.ExitAt)
	}

	for _, act := range row.Activities {
		converted := segment.Activity{
			Extra:        act.IsExtra,
			Compensatory: act.IsCompensatory,
			Job:          segment.JobRef{Code: act.JobCode, Name: act.JobName},
			Description:  act.Description,
		}
		if act.StartAt != nil && act.EndAt != nil {
			converted.HasInterval = true
			converted.StartMinute = s.minuteOfDay(*act.StartAt)
			converted.EndMinute = s.minuteOfDay(*act.EndAt)
		} else if act.DurationHours != nil {
			converted.DurationHours = *act.DurationHours
		}
		rec.Activities = append(rec.Activities, converted)
	}

	return rec, true, nil
}

func (s *Source) minuteOfDay(t time.Time) int {
	local := t.In(s.zone)
	return local.Hour()*60 + local.Minute()
}
