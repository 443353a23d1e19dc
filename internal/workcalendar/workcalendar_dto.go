package workcalendar

type UpdateConfigRequest struct {
	WorkingHoursPerDay string `json:"working_hours_per_day" binding:"required"`
	MondayWorking      bool   `json:"monday_working"`
	TuesdayWorking     bool   `json:"tuesday_working"`
	WednesdayWorking   bool   `json:"wednesday_working"`
	ThursdayWorking    bool   `json:"thursday_working"`
	FridayWorking      bool   `json:"friday_working"`
	SaturdayWorking    bool   `json:"saturday_working"`
	SundayWorking      bool   `json:"sunday_working"`
}

type ConfigResponse struct {
	CompanyID          string `json:"company_id"`
	WorkingHoursPerDay string `json:"working_hours_per_day"`
	MondayWorking      bool   `json:"monday_working"`
	TuesdayWorking     bool   `json:"tuesday_working"`
	WednesdayWorking   bool   `json:"wednesday_working"`
	ThursdayWorking    bool   `json:"thursday_working"`
	FridayWorking      bool   `json:"friday_working"`
	SaturdayWorking    bool   `json:"saturday_working"`
	SundayWorking      bool   `json:"sunday_working"`
	WorkingDaysPerWeek int    `json:"working_days_per_week"`
}
