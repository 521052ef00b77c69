package holiday

import (
	"context"

	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
)

// Calendar adapts the holiday service to the classifier's HolidayCalendar
// collaborator interface.
type Calendar struct {
	service Service
}

func NewCalendar(service Service) *Calendar {
	return &Calendar{service: service}
}

func (c *Calendar) Holiday(ctx context.Context, date string) (classify.HolidayInfo, error) {
	status, err := c.service.Status(ctx, date)
	if err != nil {
		return classify.HolidayInfo{}, err
	}
	return classify.HolidayInfo{IsHoliday: status.IsHoliday, Name: status.Name}, nil
}
