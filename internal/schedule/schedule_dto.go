package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/control-room-cisa/server-planillero-sub000/internal/apportion"
	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// DailyScheduleResponse is the segmented and classified view of one day.
type DailyScheduleResponse struct {
	EmployeeID  string            `json:"employee_id"`
	PolicyCode  string            `json:"policy_code"`
	Date        string            `json:"date"`
	Holiday     bool              `json:"holiday"`
	HolidayName string            `json:"holiday_name,omitempty"`
	FreeDay     bool              `json:"free_day"`
	Buckets     classify.Buckets  `json:"buckets"`
	Segments    []segment.Segment `json:"segments"`
	Findings    []segment.Finding `json:"findings,omitempty"`
}

// BucketHours mirrors classify.Buckets with minutes converted to decimal
// hours rounded to two places.
type BucketHours struct {
	Normal decimal.Decimal `json:"normal"`
	Lunch  decimal.Decimal `json:"lunch"`
	Free   decimal.Decimal `json:"free"`
	P25    decimal.Decimal `json:"p25"`
	P50    decimal.Decimal `json:"p50"`
	P75    decimal.Decimal `json:"p75"`
	P100   decimal.Decimal `json:"p100"`

	Leave map[string]decimal.Decimal `json:"leave,omitempty"`
}

// DayHours pairs one date with its per-bucket hours.
type DayHours struct {
	Date  string      `json:"date"`
	Hours BucketHours `json:"hours"`
}

type RangeHoursResponse struct {
	EmployeeID string      `json:"employee_id"`
	PolicyCode string      `json:"policy_code"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Hours      BucketHours `json:"hours"`
	Days       []DayHours  `json:"days"`
}

type RangeApportionmentResponse struct {
	EmployeeID    string           `json:"employee_id"`
	PolicyCode    string           `json:"policy_code"`
	From          string           `json:"from"`
	To            string           `json:"to"`
	Apportionment apportion.Result `json:"apportionment"`
}

type RangeReportRequest struct {
	DateFrom    string `json:"date_from" binding:"required"`
	DateTo      string `json:"date_to" binding:"required"`
	RequestedBy string `json:"requested_by"`
}

type RangeReportAccepted struct {
	EmployeeID string `json:"employee_id"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Status     string `json:"status"`
}

func hoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

func bucketHours(b classify.Buckets) BucketHours {
	out := BucketHours{
		Normal: hoursFromMinutes(b.Normal),
		Lunch:  hoursFromMinutes(b.Lunch),
		Free:   hoursFromMinutes(b.Free),
		P25:    hoursFromMinutes(b.P25),
		P50:    hoursFromMinutes(b.P50),
		P75:    hoursFromMinutes(b.P75),
		P100:   hoursFromMinutes(b.P100),
	}
	if len(b.Leave) > 0 {
		out.Leave = make(map[string]decimal.Decimal, len(b.Leave))
		for code, minutes := range b.Leave {
			out.Leave[string(code)] = hoursFromMinutes(minutes)
		}
	}
	return out
}
