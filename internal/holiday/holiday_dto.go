package holiday

type UpsertHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
