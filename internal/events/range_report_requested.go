package events

import "time"

const RangeReportRequestedTopic = "planillero.payroll.range-report.requested.v1"

type RangeReportRequestedEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  string    `json:"employee_id"`
	DateFrom    string    `json:"date_from"`
	DateTo      string    `json:"date_to"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
