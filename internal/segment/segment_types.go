package segment

const (
	MinutesPerDay = 1440
	SlotMinutes   = 15
	SlotsPerDay   = MinutesPerDay / SlotMinutes

	// Daytime band boundaries. Both are mandatory segment cut points so the
	// classifiers can tell day-rate minutes from night-rate minutes without
	// re-splitting.
	DayStartMinute   = 5 * 60  // 05:00
	NightStartMinute = 19 * 60 // 19:00

	LunchStartMinute = 12 * 60 // 12:00
	LunchEndMinute   = 13 * 60 // 13:00
)

type Kind string

const (
	KindNormal Kind = "NORMAL"
	KindLunch  Kind = "LUNCH"
	KindExtra  Kind = "EXTRA"
	KindFree   Kind = "FREE"
)

// JobRef identifies a cost center. The zero value means "untagged".
type JobRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (j JobRef) IsZero() bool { return j.Code == "" && j.Name == "" }

// Segment is one half-open [Start, End) slice of a day, aligned to the
// 15-minute grid.
type Segment struct {
	Start        int    `json:"start"` // minute of day, inclusive
	End          int    `json:"end"`   // minute of day, exclusive
	Kind         Kind   `json:"kind"`
	Job          JobRef `json:"job,omitempty"`
	Description  string `json:"description,omitempty"`
	Compensatory bool   `json:"compensatory,omitempty"`
}

func (s Segment) Minutes() int { return s.End - s.Start }

// Record is the engine-facing view of one day's attendance. It is built by
// the persistence adapter; the segmenter never touches storage.
type Record struct {
	Date            string // YYYY-MM-DD
	Present         bool   // false means no record exists for the date
	EntryMinute     int    // minute of day
	ExitMinute      int    // minute of day; less than EntryMinute on overnight windows
	ContinuousShift bool   // no lunch deduction
	FreeDay         bool   // contractual free day
	Activities      []Activity
}

// Activity is one logged task within a day. Extra activities must carry an
// explicit interval; non-extra activities may instead carry a plain duration.
type Activity struct {
	Extra         bool
	Compensatory  bool
	Job           JobRef
	Description   string
	HasInterval   bool
	StartMinute   int
	EndMinute     int
	DurationHours float64
}

// FreeRecord is the synthetic stand-in used when no attendance record exists
// for a date: the whole day is FREE.
func FreeRecord(date string) Record {
	return Record{Date: date, FreeDay: true}
}

// WindowMinutes is the declared entry/exit interval length, accounting for
// overnight wrap. Zero when the day has no contractual window.
func (r Record) WindowMinutes() int {
	if !r.Present || r.FreeDay || r.EntryMinute == r.ExitMinute {
		return 0
	}
	if r.ExitMinute > r.EntryMinute {
		return r.ExitMinute - r.EntryMinute
	}
	return (MinutesPerDay - r.EntryMinute) + r.ExitMinute
}

type FindingCode string

const (
	FindingExtraWithinNormal       FindingCode = "EXTRA_WITHIN_NORMAL"
	FindingNormalOutsideWindow     FindingCode = "NORMAL_OUTSIDE_WINDOW"
	FindingLunchNotEligible        FindingCode = "LUNCH_NOT_ELIGIBLE"
	FindingLunchOutsideWindow      FindingCode = "LUNCH_OUTSIDE_WINDOW"
	FindingNormalPlusLunchMismatch FindingCode = "NORMAL_PLUS_LUNCH_MISMATCH"
)

// Finding is a soft validation result. The segmenter always returns a usable
// segment list; findings tell the caller what looked wrong.
type Finding struct {
	Code   FindingCode `json:"code"`
	Start  int         `json:"start,omitempty"` // offending minute range, when applicable
	End    int         `json:"end,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// Totals are per-kind minute sums over the built segments.
type Totals struct {
	Normal int `json:"normal"`
	Lunch  int `json:"lunch"`
	Extra  int `json:"extra"`
	Free   int `json:"free"`
}

func (t Totals) Sum() int { return t.Normal + t.Lunch + t.Extra + t.Free }

// Result is the full segmenter output for one day.
type Result struct {
	Segments []Segment `json:"segments"`
	Findings []Finding `json:"findings,omitempty"`
	Totals   Totals    `json:"totals"`
}

// HasFinding reports whether a finding with the given code was emitted.
func (r Result) HasFinding(code FindingCode) bool {
	for _, f := range r.Findings {
		if f.Code == code {
			return true
		}
	}
	return false
}
