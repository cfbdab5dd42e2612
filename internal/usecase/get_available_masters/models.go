package get_available_masters

import "time"

// Request запрос на поиск свободных мастеров салона на точный интервал
type Request struct {
	SalonID         int64
	Start           time.Time
	DurationMinutes int
}

// AvailableMaster мастер, свободный в запрошенный интервал
type AvailableMaster struct {
	MasterID  int64
	Name      string
	Specialty string
}

// Response свободные мастера салона
type Response struct {
	SalonID int64
	Masters []AvailableMaster
}
