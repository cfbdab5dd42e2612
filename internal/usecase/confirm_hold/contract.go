package confirm_hold

import (
	"context"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
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
