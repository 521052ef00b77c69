package apportion

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// jobDay tracks one job's logged extra minutes within a single day, split by
// band, plus its direct normal minutes.
type jobDay struct {
	daytime   int
	nighttime int
	normal    int
}

func (j jobDay) total() int { return j.daytime + j.nighttime }

// accumulator collects fractional minutes per bracket per job over the whole
// range; rounding to hours happens once at the end.
type accumulator struct {
	minutes  map[string]map[segment.JobRef]float64
	comments map[segment.JobRef]map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		minutes:  make(map[string]map[segment.JobRef]float64),
		comments: make(map[segment.JobRef]map[string]struct{}),
	}
}

func (a *accumulator) add(bracket string, job segment.JobRef, minutes float64) {
	if minutes == 0 {
		return
	}
	if a.minutes[bracket] == nil {
		a.minutes[bracket] = make(map[segment.JobRef]float64)
	}
	a.minutes[bracket][job] += minutes
}

func (a *accumulator) comment(job segment.JobRef, text string) {
	if text == "" {
		return
	}
	if a.comments[job] == nil {
		a.comments[job] = make(map[string]struct{})
	}
	a.comments[job][text] = struct{}{}
}

// Distribute re-apportions a classified range's bucket minutes across the
// jobs actually worked each day.
//
// Normal minutes map 1:1 to their job. Extra brackets are split per day:
// 25% proportional to each job's daytime extra minutes, 50% to nighttime,
// 100% to total, and 75% in two passes, first against the daytime pool up to
// its capacity and the remainder against the nighttime pool. Holiday (100%)
// minutes with no job tag land on the synthetic Holiday job.
func Distribute(res classify.RangeResult) Result {
	acc := newAccumulator()

	for _, day := range res.Days {
		distributeDay(day, acc)
	}

	return Result{
		Normal: acc.entries("normal"),
		P25:    acc.entries("p25"),
		P50:    acc.entries("p50"),
		P75:    acc.entries("p75"),
		P100:   acc.entries("p100"),
	}
}

func distributeDay(day classify.DayDetail, acc *accumulator) {
	stats := make(map[segment.JobRef]*jobDay)
	untaggedExtra := 0

	for _, seg := range day.Segments {
		switch seg.Kind {
		case segment.KindNormal:
			if seg.Job.IsZero() {
				continue
			}
			if _, leave := classify.LeaveCodeFor(seg.Job.Code, seg.Compensatory); leave {
				continue
			}
			statFor(stats, seg.Job).normal += seg.Minutes()
			acc.comment(seg.Job, seg.Description)
		case segment.KindExtra:
			if seg.Job.IsZero() {
				untaggedExtra += seg.Minutes()
				continue
			}
			s := statFor(stats, seg.Job)
			d, n := bandMinutes(seg)
			s.daytime += d
			s.nighttime += n
			acc.comment(seg.Job, seg.Description)
		}
	}

	for job, s := range stats {
		acc.add("normal", job, float64(s.normal))
	}

	var dayPool, nightPool, totalPool int
	for _, s := range stats {
		dayPool += s.daytime
		nightPool += s.nighttime
		totalPool += s.total()
	}

	// 25% follows the daytime pool, 50% the nighttime pool.
	splitProportional(acc, "p25", day.Buckets.P25, stats, func(s *jobDay) int { return s.daytime }, dayPool)
	splitProportional(acc, "p50", day.Buckets.P50, stats, func(s *jobDay) int { return s.nighttime }, nightPool)

	// 75% drains the daytime pool first, then falls through to nighttime.
	p75 := day.Buckets.P75
	if p75 > 0 {
		if dayPool >= p75 {
			splitProportional(acc, "p75", p75, stats, func(s *jobDay) int { return s.daytime }, dayPool)
		} else {
			for job, s := range stats {
				acc.add("p75", job, float64(s.daytime))
			}
			splitProportional(acc, "p75", p75-dayPool, stats, func(s *jobDay) int { return s.nighttime }, nightPool)
		}
	}

	// 100% follows total logged minutes; anything untagged is holiday time.
	p100 := day.Buckets.P100
	if p100 > 0 {
		tagged := p100 - untaggedExtra
		if tagged < 0 {
			tagged = 0
		}
		splitProportional(acc, "p100", tagged, stats, func(s *jobDay) int { return s.total() }, totalPool)
		if untagged := p100 - tagged; untagged > 0 {
			acc.add("p100", HolidayJob, float64(untagged))
			if day.HolidayName != "" {
				acc.comment(HolidayJob, day.HolidayName)
			}
		}
	}
}

func statFor(stats map[segment.JobRef]*jobDay, job segment.JobRef) *jobDay {
	s, ok := stats[job]
	if !ok {
		s = &jobDay{}
		stats[job] = s
	}
	return s
}

// bandMinutes splits a segment's minutes at the day/night boundaries. The
// segmenter already cuts at 05:00 and 19:00 so a segment sits in one band.
func bandMinutes(seg segment.Segment) (day, night int) {
	if seg.Start >= segment.DayStartMinute && seg.Start < segment.NightStartMinute {
		return seg.Minutes(), 0
	}
	return 0, seg.Minutes()
}

// splitProportional shares `minutes` across jobs proportionally to their pool
// weight. When the designated pool is empty the total pool is used instead so
// minutes are never silently dropped.
func splitProportional(
	acc *accumulator,
	bracket string,
	minutes int,
	stats map[segment.JobRef]*jobDay,
	weight func(*jobDay) int,
	pool int,
) {
	if minutes <= 0 || len(stats) == 0 {
		return
	}
	if pool <= 0 {
		weight = func(s *jobDay) int { return s.total() }
		pool = 0
		for _, s := range stats {
			pool += s.total()
		}
		if pool <= 0 {
			return
		}
	}
	for job, s := range stats {
		w := weight(s)
		if w == 0 {
			continue
		}
		acc.add(bracket, job, float64(minutes)*float64(w)/float64(pool))
	}
}

// entries materializes one bracket's accumulated minutes as sorted, rounded
// hour entries.
func (a *accumulator) entries(bracket string) []Entry {
	jobs := a.minutes[bracket]
	if len(jobs) == 0 {
		return nil
	}

	out := make([]Entry, 0, len(jobs))
	for job, minutes := range jobs {
		hours := decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)
		if hours.IsZero() {
			continue
		}
		out = append(out, Entry{
			Job:      job,
			Hours:    hours,
			Comments: a.commentList(job),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Job.Code < out[j].Job.Code })
	return out
}

func (a *accumulator) commentList(job segment.JobRef) []string {
	set := a.comments[job]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for text := range set {
		out = append(out, text)
	}
	sort.Strings(out)
	return out
}
