package attendance

type ActivityPayload struct {
	IsExtra        bool     `json:"is_extra"`
	IsCompensatory bool     `json:"is_compensatory"`
	JobCode        string   `json:"job_code"`
	JobName        string   `json:"job_name"`
	Description    string   `json:"description"`
	StartAt        *string  `json:"start_at"` // RFC3339; required when is_extra
	EndAt          *string  `json:"end_at"`
	DurationHours  *float64 `json:"duration_hours"`
}

type UpsertAttendanceRequest struct {
	EmployeeID      string            `json:"employee_id" binding:"required"`
	Date            string            `json:"date" binding:"required"`
	EntryAt         *string           `json:"entry_at"` // RFC3339
	ExitAt          *string           `json:"exit_at"`
	ContinuousShift bool              `json:"continuous_shift"`
	FreeDay         bool              `json:"free_day"`
	Activities      []ActivityPayload `json:"activities"`
}

type ActivityResponse struct {
	ID             string   `json:"id"`
	IsExtra        bool     `json:"is_extra"`
	IsCompensatory bool     `json:"is_compensatory"`
	JobCode        string   `json:"job_code,omitempty"`
	JobName        string   `json:"job_name,omitempty"`
	Description    string   `json:"description,omitempty"`
	StartAt        *string  `json:"start_at,omitempty"`
	EndAt          *string  `json:"end_at,omitempty"`
	DurationHours  *float64 `json:"duration_hours,omitempty"`
}

type AttendanceResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	Date            string             `json:"date"`
	EntryAt         *string            `json:"entry_at,omitempty"`
	ExitAt          *string            `json:"exit_at,omitempty"`
	ContinuousShift bool               `json:"continuous_shift"`
	FreeDay         bool               `json:"free_day"`
	Activities      []ActivityResponse `json:"activities,omitempty"`
}
