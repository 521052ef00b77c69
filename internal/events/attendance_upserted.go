package events

import "time"

const AttendanceUpsertedTopic = "planillero.attendance.upserted.v1"

type AttendanceUpsertedEvent struct {
	EventType  string    `json:"event_type"`
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}
