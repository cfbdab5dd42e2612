package confirm_hold

import "github.com/katiabooking/KB-BookingService/internal/domain"

// Request запрос на подтверждение временного холда
type Request struct {
	HoldID    string
	ClientID  int64
	BookingID *int64
	ChargeRef *string
}

// Response подтвержденная запись календаря
type Response struct {
	Record *domain.ReservationRecord
}
