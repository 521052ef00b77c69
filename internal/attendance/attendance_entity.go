package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	WorkDate   time.Time `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`

	EntryAt *time.Time `gorm:"column:entry_at;type:timestamptz"`
	ExitAt  *time.Time `gorm:"column:exit_at;type:timestamptz"`

	ContinuousShift bool `gorm:"column:continuous_shift;not null;default:false"`
	FreeDay         bool `gorm:"column:free_day;not null;default:false"`

	Activities []Activity `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

type Activity struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecordID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null;default:0"`

	IsExtra        bool   `gorm:"column:is_extra;not null;default:false"`
	IsCompensatory bool   `gorm:"column:is_compensatory;not null;default:false"`
	JobCode        string `gorm:"column:job_code;type:varchar(30)"`
	JobName        string `gorm:"column:job_name;type:varchar(150)"`
	Description    string `gorm:"type:text"`

	// Either an explicit interval (mandatory for extra activities) or a
	// plain duration in hours.
	StartAt       *time.Time `gorm:"column:start_at;type:timestamptz"`
	EndAt         *time.Time `gorm:"column:end_at;type:timestamptz"`
	DurationHours *float64   `gorm:"column:duration_hours"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Activity) TableName() string {
	return "attendance_activities"
}
