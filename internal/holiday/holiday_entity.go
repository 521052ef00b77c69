package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HolidayDate time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(150);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Holiday) TableName() string {
	return "holidays"
}
