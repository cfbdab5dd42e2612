package staffservice

// Master модель мастера из StaffService
type Master struct {
	ID           int64        `json:"id"`
	SalonID      int64        `json:"salon_id"`
	Name         string       `json:"name"`
	Specialty    string       `json:"specialty"`
	IsActive     bool         `json:"is_active"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// Salon модель салона из StaffService
type Salon struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Timezone string  `json:"timezone"`
	StaffIDs []int64 `json:"staff_ids"` // Пользователи с правами управления салоном
}

// WeekSchedule расписание работы мастера по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание на один день недели
type DaySchedule struct {
	IsWorking bool    `json:"is_working"`
	StartTime *string `json:"start_time,omitempty"` // "09:00"
	EndTime   *string `json:"end_time,omitempty"`   // "19:00"
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
