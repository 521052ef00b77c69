package classify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	classifyerrors "github.com/control-room-cisa/server-planillero-sub000/internal/classify/errors"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

type fakeRecords struct {
	recs map[string]segment.Record
}

func (f *fakeRecords) Record(ctx context.Context, employeeID, date string) (segment.Record, bool, error) {
	rec, ok := f.recs[date]
	return rec, ok, nil
}

type fakeHolidays struct {
	hols map[string]string
}

func (f *fakeHolidays) Holiday(ctx context.Context, date string) (classify.HolidayInfo, error) {
	name, ok := f.hols[date]
	return classify.HolidayInfo{IsHoliday: ok, Name: name}, nil
}

func flexDeps(recs map[string]segment.Record, hols map[string]string) classify.Deps {
	return classify.Deps{
		Records:  &fakeRecords{recs: recs},
		Holidays: &fakeHolidays{hols: hols},
		Config:   classify.DefaultConfig(),
	}
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

func extraActivity(start, end int) segment.Activity {
	return segment.Activity{Extra: true, HasInterval: true, StartMinute: start, EndMinute: end}
}

func TestFlexible_MissingRecordIsFullyFree(t *testing.T) {
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.True(t, day.FreeDay)
	assert.Equal(t, segment.MinutesPerDay, day.Buckets.Free)
	assert.Equal(t, 0, day.Buckets.Normal)
}

func TestFlexible_StandardWorkday(t *testing.T) {
	recs := map[string]segment.Record{"2026-03-02": workday("2026-03-02")}
	c := classify.NewFlexible(flexDeps(recs, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 540, day.Buckets.Normal)
	assert.Equal(t, 60, day.Buckets.Lunch)
	assert.Equal(t, 840, day.Buckets.Free)
	assert.Equal(t, segment.MinutesPerDay, day.Buckets.TotalMinutes())
}

func TestFlexible_FreeDayExtraPaysFull(t *testing.T) {
	// 2026-03-01 is a Sunday contractual free day with two extra hours.
	rec := segment.Record{Date: "2026-03-01", Present: true, FreeDay: true}
	rec.Activities = []segment.Activity{extraActivity(minute(10, 0), minute(12, 0))}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-01": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-01")

	assert.NoError(t, err)
	assert.Equal(t, 120, day.Buckets.P100)
	assert.Equal(t, 1320, day.Buckets.Free)
}

func TestFlexible_HolidayExtraPaysFull(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{extraActivity(minute(18, 0), minute(20, 0))}
	hols := map[string]string{"2026-03-02": "National Day"}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, hols))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.True(t, day.Holiday)
	assert.Equal(t, "National Day", day.HolidayName)
	assert.Equal(t, 120, day.Buckets.P100)
	assert.Equal(t, 0, day.Buckets.P25)
}

func TestFlexible_DaytimeExtraStartsAtQuarterRate(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{extraActivity(minute(17, 0), minute(18, 0))}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 60, day.Buckets.P25)
	assert.Equal(t, 0, day.Buckets.P50)
}

func TestFlexible_NightFloorLocksHalfRate(t *testing.T) {
	// Night extra raises the floor to 150; every slot of the run pays 50%.
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{extraActivity(minute(19, 0), minute(21, 0))}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 120, day.Buckets.P50)
	assert.Equal(t, 0, day.Buckets.P25)
}

func TestFlexible_MixedTierOpensAfterThreshold(t *testing.T) {
	// Three night hours at 50%, then daytime continuation: the slot that
	// first touches daytime still pays 50%, everything after pays 75%.
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{extraActivity(minute(2, 0), minute(5, 30))}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 195, day.Buckets.P50)
	assert.Equal(t, 15, day.Buckets.P75)
}

func TestFlexible_FreeGapResetsStreak(t *testing.T) {
	// Morning night-rate extra, a free gap, then an evening daytime extra:
	// the gap resets the floor, so the evening run restarts at 25%.
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{
		extraActivity(minute(2, 0), minute(4, 0)),
		extraActivity(minute(17, 0), minute(18, 0)),
	}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 120, day.Buckets.P50)
	assert.Equal(t, 60, day.Buckets.P25)
}

func TestFlexible_SeedingCarriesStreakAcrossMidnight(t *testing.T) {
	// Day one builds a mixed-tier-eligible streak that runs through
	// midnight; day two opens with extra at 00:00 and must pay 75%.
	day1 := workday("2026-03-02")
	day1.Activities = []segment.Activity{extraActivity(minute(18, 0), minute(24, 0))}
	day2 := workday("2026-03-03")
	day2.Activities = []segment.Activity{extraActivity(0, minute(1, 0))}

	recs := map[string]segment.Record{"2026-03-02": day1, "2026-03-03": day2}
	c := classify.NewFlexible(flexDeps(recs, nil))

	detail, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-03")

	assert.NoError(t, err)
	assert.Equal(t, 60, detail.Buckets.P75)
	assert.Equal(t, 0, detail.Buckets.P50)
}

func TestFlexible_HolidayCarryKeepsFloorNextDay(t *testing.T) {
	holiday := segment.Record{Date: "2026-03-02", Present: true}
	holiday.Activities = []segment.Activity{extraActivity(minute(22, 0), minute(24, 0))}
	day2 := workday("2026-03-03")
	day2.Activities = []segment.Activity{extraActivity(0, minute(1, 0))}

	recs := map[string]segment.Record{"2026-03-02": holiday, "2026-03-03": day2}
	hols := map[string]string{"2026-03-02": "National Day"}
	c := classify.NewFlexible(flexDeps(recs, hols))

	res, err := c.ClassifyRange(context.Background(), "emp-1", "2026-03-02", "2026-03-03")

	assert.NoError(t, err)
	assert.Equal(t, 120, res.Buckets.P100)
	// The streak survived midnight with the night floor, so the next
	// morning's run pays 50% even though the holiday paid 100%.
	assert.Equal(t, 60, res.Buckets.P50)
}

func TestFlexible_RangeTotalsBalance(t *testing.T) {
	recs := map[string]segment.Record{
		"2026-03-02": workday("2026-03-02"),
		"2026-03-03": workday("2026-03-03"),
	}
	c := classify.NewFlexible(flexDeps(recs, nil))

	res, err := c.ClassifyRange(context.Background(), "emp-1", "2026-03-02", "2026-03-04")

	assert.NoError(t, err)
	assert.Len(t, res.Days, 3)
	assert.Equal(t, 3*segment.MinutesPerDay, res.Buckets.TotalMinutes())
	assert.Equal(t, 2*540, res.Buckets.Normal)
}

func TestFlexible_InvalidRangeRejected(t *testing.T) {
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{}, nil))

	_, err := c.ClassifyRange(context.Background(), "emp-1", "2026-03-05", "2026-03-02")

	assert.ErrorIs(t, err, classifyerrors.ErrInvalidRange)
}

func TestFlexible_BadDateRejected(t *testing.T) {
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{}, nil))

	_, err := c.SegmentDay(context.Background(), "emp-1", "02-03-2026")

	assert.ErrorIs(t, err, classifyerrors.ErrInvalidDateFormat)
}

func TestFlexible_ExtraInsideWindowIsHardError(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{extraActivity(minute(9, 0), minute(10, 0))}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	_, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.ErrorIs(t, err, classifyerrors.ErrExtraWithinNormal)
}

func TestFlexible_IntervalLeaveRoutesToBucket(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{
		{
			HasInterval: true,
			Job:         segment.JobRef{Code: "VACATION", Name: "Vacation"},
			StartMinute: minute(7, 0),
			EndMinute:   minute(17, 0),
		},
	}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 540, day.Buckets.Leave[classify.LeaveVacation])
	assert.Equal(t, 0, day.Buckets.Normal)
	assert.Equal(t, 60, day.Buckets.Lunch)
	assert.Equal(t, segment.MinutesPerDay, day.Buckets.TotalMinutes())
}

func TestFlexible_DurationLeaveComesOutOfNormal(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{
		{Job: segment.JobRef{Code: "PAID_LEAVE"}, DurationHours: 4},
	}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 240, day.Buckets.Leave[classify.LeavePaid])
	assert.Equal(t, 300, day.Buckets.Normal)
	assert.Equal(t, segment.MinutesPerDay, day.Buckets.TotalMinutes())
}

func TestFlexible_CompensatoryWinsOverJobCode(t *testing.T) {
	rec := workday("2026-03-02")
	rec.Activities = []segment.Activity{
		{
			HasInterval:  true,
			Compensatory: true,
			Job:          segment.JobRef{Code: "VACATION"},
			StartMinute:  minute(7, 0),
			EndMinute:    minute(12, 0),
		},
	}
	c := classify.NewFlexible(flexDeps(map[string]segment.Record{"2026-03-02": rec}, nil))

	day, err := c.SegmentDay(context.Background(), "emp-1", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 300, day.Buckets.Leave[classify.LeaveCompensatory])
	assert.Equal(t, 0, day.Buckets.Leave[classify.LeaveVacation])
}
