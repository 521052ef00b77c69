package classify

import (
	"context"

	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// loadDay resolves one day's record (or the synthetic free record), its
// holiday status, and the segmented grid. Shared by both classifiers.
func loadDay(
	ctx context.Context,
	deps Deps,
	employeeID, date string,
) (segment.Record, HolidayInfo, segment.Result, error) {
	rec, found, err := deps.Records.Record(ctx, employeeID, date)
	if err != nil {
		return segment.Record{}, HolidayInfo{}, segment.Result{}, err
	}
	if !found {
		rec = segment.FreeRecord(date)
	}

	hol, err := deps.Holidays.Holiday(ctx, date)
	if err != nil {
		return segment.Record{}, HolidayInfo{}, segment.Result{}, err
	}

	res := segment.Build(rec)

	// The one segmentation finding that is a contract violation rather than
	// a soft warning: extra time recorded inside the declared window.
	for _, f := range res.Findings {
		if f.Code == segment.FindingExtraWithinNormal {
			return segment.Record{}, HolidayInfo{}, segment.Result{},
				classifyerrors.ErrExtraWithinNormal.WithDetails(classifyerrors.MinuteRangeDetail{
					Date:  date,
					Start: f.Start,
					End:   f.End,
				})
		}
	}

	return rec, hol, res, nil
}

// foldDurationLeaves adds interval-less leave activities straight into their
// leave bucket and takes the same minutes back out of normal so the day still
// sums to 1440.
func foldDurationLeaves(rec segment.Record, buckets *Buckets) {
	for _, act := range rec.Activities {
		if act.Extra || act.HasInterval {
			continue
		}
		code, ok := LeaveCodeFor(act.Job.Code, act.Compensatory)
		if !ok {
			continue
		}
		minutes := int(act.DurationHours * 60)
		if minutes <= 0 {
			continue
		}
		buckets.AddLeave(code, minutes)
		buckets.Normal -= minutes
	}
}

// checkDayBalance enforces the hard 1440-minute invariant. Nothing is ever
// corrected here; a failing day always surfaces.
func checkDayBalance(detail DayDetail) error {
	if total := detail.Buckets.TotalMinutes(); total != segment.MinutesPerDay {
		return classifyerrors.ErrUnbalancedDay.WithDetails(classifyerrors.UnbalancedDayDetail{
			Date:         detail.Date,
			TotalMinutes: total,
			Buckets:      detail.Buckets.AsMap(),
		})
	}
	return nil
}
