package cancel_booking

import "github.com/katiabooking/KB-BookingService/internal/domain"

// Request запрос на отмену записи
type Request struct {
	ReservationID string
	ClientID      int64
	// IsStaff сотрудник салона может отменять чужие записи
	IsStaff  bool
	Reason   string
	IsNoShow bool
}

// Response результат отмены
type Response struct {
	Record       *domain.ReservationRecord
	RefundAmount int64
	RefundID     *string
}
