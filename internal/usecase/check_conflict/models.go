package check_conflict

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

// Request запрос на проверку конфликта интервала
type Request struct {
	MasterID        int64
	Start           time.Time
	DurationMinutes int
}

// Response результат проверки конфликта
type Response struct {
	Available           bool
	OutsideWorkingHours bool
	Conflict            *domain.ReservationRecord
}
