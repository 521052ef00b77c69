package classify

import (
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// LeaveCode keys the special-leave minute counters.
type LeaveCode string

const (
	LeaveDisability   LeaveCode = "DISABILITY"
	LeaveVacation     LeaveCode = "VACATION"
	LeavePaid         LeaveCode = "PAID_LEAVE"
	LeaveUnpaid       LeaveCode = "UNPAID_LEAVE"
	LeaveAbsence      LeaveCode = "ABSENCE"
	LeaveCompensatory LeaveCode = "COMPENSATORY"
)

var leaveJobCodes = map[string]LeaveCode{
	"DISABILITY":   LeaveDisability,
	"VACATION":     LeaveVacation,
	"PAID_LEAVE":   LeavePaid,
	"UNPAID_LEAVE": LeaveUnpaid,
	"ABSENCE":      LeaveAbsence,
}

// LeaveCodeFor resolves the leave bucket for a job code plus compensatory
// flag. Compensatory wins over the job code.
func LeaveCodeFor(jobCode string, compensatory bool) (LeaveCode, bool) {
	if compensatory {
		return LeaveCompensatory, true
	}
	code, ok := leaveJobCodes[jobCode]
	return code, ok
}

// Buckets are the per-day (and, summed, per-range) pay-rate minute counters.
type Buckets struct {
	Normal int `json:"normal"`
	Lunch  int `json:"lunch"`
	Free   int `json:"free"`
	P25    int `json:"p25"`
	P50    int `json:"p50"`
	P75    int `json:"p75"`
	P100   int `json:"p100"`

	Leave map[LeaveCode]int `json:"leave,omitempty"`
}

func NewBuckets() Buckets {
	return Buckets{Leave: make(map[LeaveCode]int)}
}

func (b *Buckets) AddLeave(code LeaveCode, minutes int) {
	if b.Leave == nil {
		b.Leave = make(map[LeaveCode]int)
	}
	b.Leave[code] += minutes
}

// Fold adds other's counters into b.
func (b *Buckets) Fold(other Buckets) {
	b.Normal += other.Normal
	b.Lunch += other.Lunch
	b.Free += other.Free
	b.P25 += other.P25
	b.P50 += other.P50
	b.P75 += other.P75
	b.P100 += other.P100
	for code, minutes := range other.Leave {
		b.AddLeave(code, minutes)
	}
}

// TotalMinutes sums every counter, leave included. A balanced N-day range
// totals exactly N*1440.
func (b Buckets) TotalMinutes() int {
	total := b.Normal + b.Lunch + b.Free + b.P25 + b.P50 + b.P75 + b.P100
	for _, minutes := range b.Leave {
		total += minutes
	}
	return total
}

// AsMap flattens the counters for error details and event payloads.
func (b Buckets) AsMap() map[string]int {
	m := map[string]int{
		"normal": b.Normal,
		"lunch":  b.Lunch,
		"free":   b.Free,
		"p25":    b.P25,
		"p50":    b.P50,
		"p75":    b.P75,
		"p100":   b.P100,
	}
	for code, minutes := range b.Leave {
		m["leave_"+string(code)] = minutes
	}
	return m
}

// DayDetail is one day's classification outcome.
type DayDetail struct {
	Date        string            `json:"date"`
	Holiday     bool              `json:"holiday"`
	HolidayName string            `json:"holiday_name,omitempty"`
	FreeDay     bool              `json:"free_day"`
	Buckets     Buckets           `json:"buckets"`
	Segments    []segment.Segment `json:"segments"`
	Findings    []segment.Finding `json:"findings,omitempty"`
}

// RangeResult is the outcome of classifying a chronological span of days.
type RangeResult struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	Buckets Buckets     `json:"buckets"`
	Days    []DayDetail `json:"days"`
}
