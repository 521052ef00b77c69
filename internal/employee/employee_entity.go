package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName           string    `gorm:"type:varchar(150);not null"`
	Email              string    `gorm:"type:varchar(150);uniqueIndex"`
	SchedulePolicyCode string    `gorm:"column:schedule_policy_code;type:varchar(20);not null;default:'FLEX9'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
