package apportion

import (
	"github.com/shopspring/decimal"

	"github.com/control-room-cisa/server-planillero-sub000/internal/segment"
)

// HolidayJob is the synthetic cost center that aggregates holiday hours not
// attributable to any job-tagged activity.
var HolidayJob = segment.JobRef{Code: "HOLIDAY", Name: "Holiday"}

// Entry is one job's share of a pay bracket, in hours rounded to two
// decimals.
type Entry struct {
	Job      segment.JobRef  `json:"job"`
	Hours    decimal.Decimal `json:"hours"`
	Comments []string        `json:"comments,omitempty"`
}

// Result groups the apportioned entries per pay bracket.
type Result struct {
	Normal []Entry `json:"normal,omitempty"`
	P25    []Entry `json:"p25,omitempty"`
	P50    []Entry `json:"p50,omitempty"`
	P75    []Entry `json:"p75,omitempty"`
	P100   []Entry `json:"p100,omitempty"`
}
