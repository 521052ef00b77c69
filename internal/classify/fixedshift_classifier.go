package classify

import (
	"context"

	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// rotatingNightOverrideMinutes is the fixed expectation for the shortened
// night shift that begins on the roll-over weekday.
const rotatingNightOverrideMinutes = 360

// Rotating is the day-local classifier for the 12-hour rotating shift policy.
// Rules are rigid: no lunch, no escalation tiers, exact expected minutes.
type Rotating struct {
	deps Deps
}

func NewRotating(deps Deps) *Rotating {
	if deps.Config.LookbackDays <= 0 {
		deps.Config = DefaultConfig()
	}
	return &Rotating{deps: deps}
}

func (c *Rotating) SegmentDay(ctx context.Context, employeeID, date string) (DayDetail, error) {
	if _, err := ParseDate(date); err != nil {
		return DayDetail{}, err
	}
	detail, err := c.classifyDay(ctx, employeeID, date)
	if err != nil {
		return DayDetail{}, err
	}
	if err := checkDayBalance(detail); err != nil {
		return DayDetail{}, err
	}
	return detail, nil
}

func (c *Rotating) ClassifyRange(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeResult, error) {
	from, err := ParseDate(dateFrom)
	if err != nil {
		return RangeResult{}, err
	}
	to, err := ParseDate(dateTo)
	if err != nil {
		return RangeResult{}, err
	}
	if to.Before(from) {
		return RangeResult{}, classifyerrors.ErrInvalidRange
	}

	result := RangeResult{From: dateFrom, To: dateTo, Buckets: NewBuckets()}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		detail, err := c.classifyDay(ctx, employeeID, formatDate(day))
		if err != nil {
			return RangeResult{}, err
		}
		if err := checkDayBalance(detail); err != nil {
			return RangeResult{}, err
		}
		result.Buckets.Fold(detail.Buckets)
		result.Days = append(result.Days, detail)
	}
	return result, nil
}

func (c *Rotating) classifyDay(ctx context.Context, employeeID, date string) (DayDetail, error) {
	rec, hol, res, err := loadDay(ctx, c.deps, employeeID, date)
	if err != nil {
		return DayDetail{}, err
	}

	holidayOrFree := hol.IsHoliday || rec.FreeDay
	buckets := NewBuckets()

	for _, seg := range res.Segments {
		switch seg.Kind {
		case segment.KindLunch:
			return DayDetail{}, classifyerrors.ErrLunchNotPermitted.WithDetails(classifyerrors.MinuteRangeDetail{
				Date:  date,
				Start: seg.Start,
				End:   seg.End,
			})
		case segment.KindFree:
			buckets.Free += seg.Minutes()
		case segment.KindNormal:
			if code, ok := LeaveCodeFor(seg.Job.Code, seg.Compensatory); ok {
				buckets.AddLeave(code, seg.Minutes())
			} else {
				buckets.Normal += seg.Minutes()
			}
		case segment.KindExtra:
			// No escalation under the rotating policy.
			buckets.P25 += seg.Minutes()
		}
	}

	expected, err := c.expectedNormalMinutes(rec, date, holidayOrFree)
	if err != nil {
		return DayDetail{}, err
	}

	// Leave-coded minutes came out of the declared window, so they count
	// toward the expectation.
	found := buckets.Normal
	for _, minutes := range buckets.Leave {
		found += minutes
	}
	if found != expected {
		return DayDetail{}, classifyerrors.ErrNormalMinutesMismatch.WithDetails(classifyerrors.MinutesMismatchDetail{
			Date:     date,
			Expected: expected,
			Found:    found,
		})
	}

	foldDurationLeaves(rec, &buckets)

	return DayDetail{
		Date:        date,
		Holiday:     hol.IsHoliday,
		HolidayName: hol.Name,
		FreeDay:     rec.FreeDay,
		Buckets:     buckets,
		Segments:    res.Segments,
		Findings:    res.Findings,
	}, nil
}

// expectedNormalMinutes is the declared window length, overridden to six
// hours for the night shift that begins on the roll-over weekday, and zero on
// holidays and contractual free days.
func (c *Rotating) expectedNormalMinutes(rec segment.Record, date string, holidayOrFree bool) (int, error) {
	if holidayOrFree {
		return 0, nil
	}

	expected := rec.WindowMinutes()
	if expected == 0 {
		return 0, nil
	}

	day, err := ParseDate(date)
	if err != nil {
		return 0, err
	}

	nightShift := rec.ExitMinute < rec.EntryMinute || rec.EntryMinute >= segment.NightStartMinute
	if nightShift && day.Weekday() == c.deps.Config.RolloverWeekday {
		expected = rotatingNightOverrideMinutes
	}
	return expected, nil
}
