package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

func minute(h, m int) int { return h*60 + m }

func workday(entry, exit int) segment.Record {
	return segment.Record{
		Date:        "2026-03-02",
		Present:     true,
		EntryMinute: entry,
		ExitMinute:  exit,
	}
}

func TestBuild_StandardDayWithLunch(t *testing.T) {
	res := segment.Build(workday(minute(7, 0), minute(17, 0)))

	assert.Equal(t, 540, res.Totals.Normal)
	assert.Equal(t, 60, res.Totals.Lunch)
	assert.Equal(t, 840, res.Totals.Free)
	assert.Equal(t, 0, res.Totals.Extra)
	assert.Empty(t, res.Findings)

	// Lunch occupies exactly 12:00-13:00.
	var lunch *segment.Segment
	for i := range res.Segments {
		if res.Segments[i].Kind == segment.KindLunch {
			lunch = &res.Segments[i]
		}
	}
	if assert.NotNil(t, lunch) {
		assert.Equal(t, minute(12, 0), lunch.Start)
		assert.Equal(t, minute(13, 0), lunch.End)
	}
}

func TestBuild_CoverageIsAlwaysFullDay(t *testing.T) {
	records := []segment.Record{
		{Date: "2026-03-02"},
		segment.FreeRecord("2026-03-02"),
		workday(minute(7, 0), minute(17, 0)),
		workday(minute(22, 0), minute(6, 0)),
		{
			Date: "2026-03-02", Present: true,
			EntryMinute: minute(8, 0), ExitMinute: minute(16, 0),
			ContinuousShift: true,
			Activities: []segment.Activity{
				{Extra: true, HasInterval: true, StartMinute: minute(19, 0), EndMinute: minute(21, 0)},
			},
		},
	}

	for _, rec := range records {
		res := segment.Build(rec)
		assert.Equal(t, segment.MinutesPerDay, res.Totals.Sum())

		covered := 0
		prev := 0
		for _, seg := range res.Segments {
			assert.Equal(t, prev, seg.Start, "segments must be contiguous")
			assert.Greater(t, seg.End, seg.Start)
			covered += seg.Minutes()
			prev = seg.End
		}
		assert.Equal(t, segment.MinutesPerDay, covered)
	}
}

func TestBuild_SegmentsBreakAtBandBoundaries(t *testing.T) {
	// An overnight window crosses 05:00; the run must still split there.
	res := segment.Build(workday(minute(22, 0), minute(6, 0)))

	assert.Equal(t, 480, res.Totals.Normal)
	for _, seg := range res.Segments {
		assert.False(t, seg.Start < segment.DayStartMinute && seg.End > segment.DayStartMinute,
			"segment %d-%d crosses 05:00", seg.Start, seg.End)
		assert.False(t, seg.Start < segment.NightStartMinute && seg.End > segment.NightStartMinute,
			"segment %d-%d crosses 19:00", seg.Start, seg.End)
	}
}

func TestBuild_ContinuousShiftSkipsLunch(t *testing.T) {
	rec := workday(minute(7, 0), minute(17, 0))
	rec.ContinuousShift = true
	res := segment.Build(rec)

	assert.Equal(t, 600, res.Totals.Normal)
	assert.Equal(t, 0, res.Totals.Lunch)
	assert.True(t, res.HasFinding(segment.FindingLunchNotEligible))
	// Window still reconciles: 600 = 600 normal + 0 lunch.
	assert.False(t, res.HasFinding(segment.FindingNormalPlusLunchMismatch))
}

func TestBuild_PartialLunchOverlapIsNotEligible(t *testing.T) {
	res := segment.Build(workday(minute(8, 0), minute(12, 30)))

	assert.Equal(t, 0, res.Totals.Lunch)
	assert.True(t, res.HasFinding(segment.FindingLunchNotEligible))
}

func TestBuild_WindowAwayFromLunchHasNoFinding(t *testing.T) {
	res := segment.Build(workday(minute(14, 0), minute(18, 0)))

	assert.Equal(t, 0, res.Totals.Lunch)
	assert.Equal(t, 240, res.Totals.Normal)
	assert.Empty(t, res.Findings)
}

func TestBuild_ExtraOutsideWindow(t *testing.T) {
	rec := workday(minute(7, 0), minute(17, 0))
	rec.Activities = []segment.Activity{
		{
			Extra:       true,
			HasInterval: true,
			Job:         segment.JobRef{Code: "J1", Name: "Plant"},
			StartMinute: minute(19, 0),
			EndMinute:   minute(21, 0),
		},
	}
	res := segment.Build(rec)

	assert.Equal(t, 120, res.Totals.Extra)
	assert.Equal(t, 540, res.Totals.Normal)
	assert.Empty(t, res.Findings)
}

func TestBuild_ExtraInsideWindowIsFlagged(t *testing.T) {
	rec := workday(minute(7, 0), minute(17, 0))
	rec.Activities = []segment.Activity{
		{Extra: true, HasInterval: true, StartMinute: minute(9, 0), EndMinute: minute(10, 0)},
	}
	res := segment.Build(rec)

	assert.True(t, res.HasFinding(segment.FindingExtraWithinNormal))
	// The overlapping hour was converted to extra, so normal+lunch no longer
	// matches the declared window.
	assert.True(t, res.HasFinding(segment.FindingNormalPlusLunchMismatch))
	assert.Equal(t, 60, res.Totals.Extra)
}

func TestBuild_NonExtraOutsideWindowIsFlagged(t *testing.T) {
	rec := workday(minute(7, 0), minute(17, 0))
	rec.Activities = []segment.Activity{
		{HasInterval: true, StartMinute: minute(18, 0), EndMinute: minute(19, 0)},
	}
	res := segment.Build(rec)

	assert.True(t, res.HasFinding(segment.FindingNormalOutsideWindow))
	assert.Equal(t, 600, res.Totals.Normal)
	assert.True(t, res.HasFinding(segment.FindingNormalPlusLunchMismatch))
}

func TestBuild_MisalignedActivitySnapsToGrid(t *testing.T) {
	rec := workday(minute(7, 0), minute(17, 0))
	rec.Activities = []segment.Activity{
		{Extra: true, HasInterval: true, StartMinute: minute(19, 5), EndMinute: minute(19, 50)},
	}
	res := segment.Build(rec)

	// 19:05-19:50 floors to 19:00 and ceils to 20:00.
	assert.Equal(t, 60, res.Totals.Extra)
	var extra *segment.Segment
	for i := range res.Segments {
		if res.Segments[i].Kind == segment.KindExtra {
			extra = &res.Segments[i]
		}
	}
	if assert.NotNil(t, extra) {
		assert.Equal(t, minute(19, 0), extra.Start)
		assert.Equal(t, minute(20, 0), extra.End)
	}
}

func TestBuild_OvernightExtraWrapsMidnight(t *testing.T) {
	rec := segment.FreeRecord("2026-03-02")
	rec.Present = true
	rec.Activities = []segment.Activity{
		{Extra: true, HasInterval: true, StartMinute: minute(22, 0), EndMinute: minute(2, 0)},
	}
	res := segment.Build(rec)

	// Wraps into two same-day stretches: 00:00-02:00 and 22:00-24:00.
	assert.Equal(t, 240, res.Totals.Extra)
	assert.Equal(t, segment.KindExtra, res.Segments[0].Kind)
	assert.Equal(t, 0, res.Segments[0].Start)
}

func TestBuild_JobTagSurvivesOnNormalSegments(t *testing.T) {
	rec := workday(minute(7, 0), minute(17, 0))
	rec.Activities = []segment.Activity{
		{
			HasInterval: true,
			Job:         segment.JobRef{Code: "J7", Name: "Turbine"},
			StartMinute: minute(8, 0),
			EndMinute:   minute(11, 0),
		},
	}
	res := segment.Build(rec)

	tagged := 0
	for _, seg := range res.Segments {
		if seg.Kind == segment.KindNormal && seg.Job.Code == "J7" {
			tagged += seg.Minutes()
		}
	}
	assert.Equal(t, 180, tagged)
	assert.Equal(t, 60, res.Totals.Lunch)
}
