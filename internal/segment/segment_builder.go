package segment

import "fmt"

// slot is one 15-minute cell of the day grid. The grid is rebuilt from
// scratch for every call, compacted into Segments at the end.
type slot struct {
	kind         Kind
	job          JobRef
	desc         string
	compensatory bool
}

// Build segments one day's attendance record into a contiguous, ordered,
// 15-minute-aligned cover of 00:00-24:00. It never fails: malformed input
// surfaces as findings, and the returned segments always sum to 1440 minutes.
func Build(rec Record) Result {
	var grid [SlotsPerDay]slot
	for i := range grid {
		grid[i].kind = KindFree
	}

	var window [SlotsPerDay]bool
	for _, iv := range windowIntervals(rec) {
		from, to := slotRange(iv.start, iv.end)
		for i := from; i < to; i++ {
			window[i] = true
			grid[i].kind = KindNormal
		}
	}

	var findings []Finding
	findings = overlayLunch(rec, &grid, &window, findings)
	findings = overlayActivities(rec, &grid, &window, findings)

	// Defensive: lunch must never survive outside the declared window.
	for _, run := range slotRuns(func(i int) bool { return grid[i].kind == KindLunch && !window[i] }) {
		findings = append(findings, Finding{
			Code:  FindingLunchOutsideWindow,
			Start: run.start * SlotMinutes,
			End:   run.end * SlotMinutes,
		})
	}

	segments := compact(&grid)

	var totals Totals
	for _, s := range segments {
		switch s.Kind {
		case KindNormal:
			totals.Normal += s.Minutes()
		case KindLunch:
			totals.Lunch += s.Minutes()
		case KindExtra:
			totals.Extra += s.Minutes()
		case KindFree:
			totals.Free += s.Minutes()
		}
	}

	if wm := rec.WindowMinutes(); wm != totals.Normal+totals.Lunch {
		findings = append(findings, Finding{
			Code:   FindingNormalPlusLunchMismatch,
			Detail: fmt.Sprintf("window=%dm normal=%dm lunch=%dm", wm, totals.Normal, totals.Lunch),
		})
	}

	return Result{Segments: segments, Findings: findings, Totals: totals}
}

type interval struct{ start, end int }

// windowIntervals resolves the entry/exit window to zero, one or two
// same-day intervals. Exit before entry means the window wraps midnight.
func windowIntervals(rec Record) []interval {
	if !rec.Present || rec.FreeDay || rec.EntryMinute == rec.ExitMinute {
		return nil
	}
	if rec.ExitMinute > rec.EntryMinute {
		return []interval{{rec.EntryMinute, rec.ExitMinute}}
	}
	return []interval{{0, rec.ExitMinute}, {rec.EntryMinute, MinutesPerDay}}
}

// slotRange converts a minute interval to half-open slot indexes, snapping
// outward: starts floor to the grid, ends ceil.
func slotRange(startMin, endMin int) (int, int) {
	if startMin < 0 {
		startMin = 0
	}
	if endMin > MinutesPerDay {
		endMin = MinutesPerDay
	}
	from := startMin / SlotMinutes
	to := (endMin + SlotMinutes - 1) / SlotMinutes
	if to > SlotsPerDay {
		to = SlotsPerDay
	}
	if from > to {
		from = to
	}
	return from, to
}

func overlayLunch(rec Record, grid *[SlotsPerDay]slot, window *[SlotsPerDay]bool, findings []Finding) []Finding {
	lunchFrom, lunchTo := slotRange(LunchStartMinute, LunchEndMinute)

	overlap := false
	covered := true
	for i := lunchFrom; i < lunchTo; i++ {
		if window[i] {
			overlap = true
		} else {
			covered = false
		}
	}
	if !overlap {
		return findings
	}

	if rec.ContinuousShift || !covered {
		return append(findings, Finding{
			Code:   FindingLunchNotEligible,
			Start:  LunchStartMinute,
			End:    LunchEndMinute,
			Detail: lunchIneligibleDetail(rec, covered),
		})
	}

	for i := lunchFrom; i < lunchTo; i++ {
		grid[i].kind = KindLunch
		grid[i].job = JobRef{}
		grid[i].desc = ""
	}
	return findings
}

func lunchIneligibleDetail(rec Record, covered bool) string {
	if rec.ContinuousShift {
		return "continuous shift has no lunch deduction"
	}
	if !covered {
		return "entry/exit window does not cover 12:00-13:00"
	}
	return ""
}

func overlayActivities(rec Record, grid *[SlotsPerDay]slot, window *[SlotsPerDay]bool, findings []Finding) []Finding {
	for _, act := range rec.Activities {
		if !act.HasInterval {
			// Duration-only activities occupy no slots; the classifiers fold
			// them into leave buckets directly.
			continue
		}

		inWindowRuns := []run{}
		outWindowRuns := []run{}

		for _, iv := range activityIntervals(act) {
			from, to := slotRange(iv.start, iv.end)
			for i := from; i < to; i++ {
				if act.Extra || !window[i] {
					// Extra time, and any minutes logged outside the window,
					// replace whatever was there, lunch included.
					kind := KindNormal
					if act.Extra {
						kind = KindExtra
					}
					grid[i] = slot{kind: kind, job: act.Job, desc: act.Description, compensatory: act.Compensatory}
				} else if grid[i].kind != KindLunch {
					// In-window non-extra time keeps its NORMAL kind but
					// picks up the job tag.
					grid[i].job = act.Job
					grid[i].desc = act.Description
					grid[i].compensatory = act.Compensatory
				}

				if window[i] {
					inWindowRuns = appendSlot(inWindowRuns, i)
				} else {
					outWindowRuns = appendSlot(outWindowRuns, i)
				}
			}
		}

		if act.Extra {
			for _, r := range inWindowRuns {
				findings = append(findings, Finding{
					Code:   FindingExtraWithinNormal,
					Start:  r.start * SlotMinutes,
					End:    r.end * SlotMinutes,
					Detail: "extra activity overlaps the entry/exit window",
				})
			}
		} else {
			for _, r := range outWindowRuns {
				findings = append(findings, Finding{
					Code:  FindingNormalOutsideWindow,
					Start: r.start * SlotMinutes,
					End:   r.end * SlotMinutes,
				})
			}
		}
	}
	return findings
}

func activityIntervals(act Activity) []interval {
	if act.EndMinute > act.StartMinute {
		return []interval{{act.StartMinute, act.EndMinute}}
	}
	if act.EndMinute == act.StartMinute {
		return nil
	}
	return []interval{{0, act.EndMinute}, {act.StartMinute, MinutesPerDay}}
}

type run struct{ start, end int } // half-open slot indexes

func appendSlot(runs []run, i int) []run {
	if n := len(runs); n > 0 && runs[n-1].end == i {
		runs[n-1].end = i + 1
		return runs
	}
	return append(runs, run{i, i + 1})
}

func slotRuns(match func(i int) bool) []run {
	var runs []run
	for i := 0; i < SlotsPerDay; i++ {
		if match(i) {
			runs = appendSlot(runs, i)
		}
	}
	return runs
}

// compact folds identical consecutive slots into segments, forcing breaks at
// the 05:00 and 19:00 cut points even mid-activity.
func compact(grid *[SlotsPerDay]slot) []Segment {
	cuts := map[int]bool{
		DayStartMinute / SlotMinutes:   true,
		NightStartMinute / SlotMinutes: true,
	}

	var segments []Segment
	for i := 0; i < SlotsPerDay; i++ {
		s := grid[i]
		n := len(segments)
		if n > 0 && !cuts[i] && sameSlot(segments[n-1], s) {
			segments[n-1].End += SlotMinutes
			continue
		}
		segments = append(segments, Segment{
			Start:        i * SlotMinutes,
			End:          (i + 1) * SlotMinutes,
			Kind:         s.kind,
			Job:          s.job,
			Description:  s.desc,
			Compensatory: s.compensatory,
		})
	}
	return segments
}

func sameSlot(seg Segment, s slot) bool {
	return seg.Kind == s.kind &&
		seg.Job == s.job &&
		seg.Description == s.desc &&
		seg.Compensatory == s.compensatory
}
