package calendarevent

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,max=160"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" binding:"required"`
	IsHoliday   bool   `json:"is_holiday"`
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required,max=160"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" binding:"required"`
	IsHoliday   bool   `json:"is_holiday"`
}

type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	EventDate   string `json:"event_date"`
	IsHoliday   bool   `json:"is_holiday"`
}
