package cancel_booking

import (
	"context"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/payservice"
)

// CalendarStore интерфейс хранилища календарей
type CalendarStore interface {
	GetByID(ctx context.Context, id string) (*domain.ReservationRecord, error)
	Update(
		ctx context.Context,
		masterID int64,
		date time.Time,
		fn func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error),
	) error
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error)
}

// PayServiceClient интерфейс клиента платежного шлюза
type PayServiceClient interface {
	CreateRefund(ctx context.Context, req payservice.RefundRequest) (*payservice.Refund, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
