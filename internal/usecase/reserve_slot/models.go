package reserve_slot

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

// Mode режим создания записи
type Mode string

const (
	// ModeHold временный холд с TTL
	ModeHold Mode = "hold"
	// ModeConfirm немедленное подтверждение
	ModeConfirm Mode = "confirm"
)

// Request запрос на резервирование слота
type Request struct {
	MasterID        int64
	SalonID         int64
	ClientID        int64
	Start           time.Time
	DurationMinutes int
	Mode            Mode
	HoldTTLSeconds  *int
	ServiceName     string
	DepositAmount   int64
	ChargeRef       *string
	Notes           string
}

// Response созданная запись календаря
type Response struct {
	Record *domain.ReservationRecord
}
