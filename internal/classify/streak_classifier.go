package classify

import (
	"context"
	"time"

	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// Flexible is the multi-day streak classifier for the fixed 9h-day-with-lunch
// policy. It is stateless between calls; the streak lives in StreakState
// values threaded through the day loop.
type Flexible struct {
	deps Deps
}

func NewFlexible(deps Deps) *Flexible {
	if deps.Config.LookbackDays <= 0 {
		deps.Config = DefaultConfig()
	}
	return &Flexible{deps: deps}
}

// SegmentDay classifies a single date, seeding any streak that was already
// running at 00:00.
func (c *Flexible) SegmentDay(ctx context.Context, employeeID, date string) (DayDetail, error) {
	day, err := ParseDate(date)
	if err != nil {
		return DayDetail{}, err
	}

	st, err := c.seedState(ctx, employeeID, day)
	if err != nil {
		return DayDetail{}, err
	}

	detail, _, err := c.classifyDay(ctx, employeeID, date, st)
	if err != nil {
		return DayDetail{}, err
	}
	if err := checkDayBalance(detail); err != nil {
		return DayDetail{}, err
	}
	return detail, nil
}

// ClassifyRange walks the range in strict chronological order; the streak
// state out of day N feeds day N+1.
func (c *Flexible) ClassifyRange(ctx context.Context, employeeID, dateFrom, dateTo string) (RangeResult, error) {
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

	st, err := c.seedState(ctx, employeeID, from)
	if err != nil {
		return RangeResult{}, err
	}

	result := RangeResult{From: dateFrom, To: dateTo, Buckets: NewBuckets()}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		detail, next, err := c.classifyDay(ctx, employeeID, formatDate(day), st)
		if err != nil {
			return RangeResult{}, err
		}
		if err := checkDayBalance(detail); err != nil {
			return RangeResult{}, err
		}
		st = next
		result.Buckets.Fold(detail.Buckets)
		result.Days = append(result.Days, detail)
	}

	if total := result.Buckets.TotalMinutes(); total != len(result.Days)*segment.MinutesPerDay {
		return RangeResult{}, classifyerrors.ErrUnbalancedDay.WithDetails(classifyerrors.UnbalancedDayDetail{
			Date:         dateFrom,
			TotalMinutes: total,
			Buckets:      result.Buckets.AsMap(),
		})
	}

	return result, nil
}

// classifyDay runs one day through the segmenter and the streak, returning
// the day detail and the successor state. Balance is checked by the caller so
// the seeding replay can reuse this with a disposable sink.
func (c *Flexible) classifyDay(
	ctx context.Context,
	employeeID, date string,
	st StreakState,
) (DayDetail, StreakState, error) {
	rec, hol, res, err := loadDay(ctx, c.deps, employeeID, date)
	if err != nil {
		return DayDetail{}, st, err
	}

	// Days with no contractual window never reach the mixed tier.
	st.BlockMixedTier = rec.WindowMinutes() == 0

	holidayOrFree := hol.IsHoliday || rec.FreeDay
	buckets := NewBuckets()

	for _, seg := range res.Segments {
		switch seg.Kind {
		case segment.KindFree:
			buckets.Free += seg.Minutes()
			st = st.Reset()
		case segment.KindLunch:
			buckets.Lunch += seg.Minutes()
		case segment.KindNormal:
			if code, ok := LeaveCodeFor(seg.Job.Code, seg.Compensatory); ok {
				buckets.AddLeave(code, seg.Minutes())
			} else {
				buckets.Normal += seg.Minutes()
			}
		case segment.KindExtra:
			for slot := seg.Start; slot < seg.End; slot += segment.SlotMinutes {
				var tier Tier
				st, tier = classifyExtraSlot(st, slot, holidayOrFree)
				switch tier {
				case Tier25:
					buckets.P25 += segment.SlotMinutes
				case Tier50:
					buckets.P50 += segment.SlotMinutes
				case Tier75:
					buckets.P75 += segment.SlotMinutes
				case Tier100:
					buckets.P100 += segment.SlotMinutes
				}
			}
		}
	}

	foldDurationLeaves(rec, &buckets)

	detail := DayDetail{
		Date:        date,
		Holiday:     hol.IsHoliday,
		HolidayName: hol.Name,
		FreeDay:     rec.FreeDay,
		Buckets:     buckets,
		Segments:    res.Segments,
		Findings:    res.Findings,
	}
	return detail, st, nil
}

// seedState reconstructs the streak that was running when the range opens.
//
// If the first day does not open with an EXTRA segment at exactly 00:00 the
// streak starts empty. Otherwise we walk backward, bounded by the configured
// lookback, to the most recent day containing a FREE segment (which is where
// the streak began) and replay forward from there into a disposable sink.
func (c *Flexible) seedState(ctx context.Context, employeeID string, from time.Time) (StreakState, error) {
	rec, found, err := c.deps.Records.Record(ctx, employeeID, formatDate(from))
	if err != nil {
		return StreakState{}, err
	}
	if !found {
		return StreakState{}, nil
	}

	res := segment.Build(rec)
	if len(res.Segments) == 0 {
		return StreakState{}, nil
	}
	first := res.Segments[0]
	if first.Kind != segment.KindExtra || first.Start != 0 {
		return StreakState{}, nil
	}

	replayFrom := c.deps.Config.LookbackDays
	for back := 1; back <= c.deps.Config.LookbackDays; back++ {
		day := from.AddDate(0, 0, -back)
		prior, priorFound, err := c.deps.Records.Record(ctx, employeeID, formatDate(day))
		if err != nil {
			return StreakState{}, err
		}
		if !priorFound {
			// No record means a fully free day: the streak began after it.
			replayFrom = back
			break
		}
		if hasFreeSegment(segment.Build(prior)) {
			replayFrom = back
			break
		}
	}

	var st StreakState
	for back := replayFrom; back >= 1; back-- {
		day := from.AddDate(0, 0, -back)
		_, next, err := c.classifyDay(ctx, employeeID, formatDate(day), st)
		if err != nil {
			return StreakState{}, err
		}
		st = next
	}
	return st, nil
}

func hasFreeSegment(res segment.Result) bool {
	for _, seg := range res.Segments {
		if seg.Kind == segment.KindFree {
			return true
		}
	}
	return false
}
