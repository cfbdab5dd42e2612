package suggest_alternatives

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

// Request запрос на подбор альтернатив занятому интервалу
type Request struct {
	MasterID        int64
	SalonID         int64
	Start           time.Time
	DurationMinutes int
}

// MasterOption другой мастер салона, свободный в запрошенное время
type MasterOption struct {
	MasterID  int64
	Name      string
	Specialty string
}

// Response альтернативы: ближайшие слоты того же мастера
// и другие мастера, свободные в то же время
type Response struct {
	SameMaster []domain.TimeSlot
	SameTime   []MasterOption
}
